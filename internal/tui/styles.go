package tui

import "charm.land/lipgloss/v2"

// Color palette.
var (
	primary = lipgloss.Color("#6366F1") // Indigo
	success = lipgloss.Color("#22C55E") // Green
	warning = lipgloss.Color("#F59E0B") // Amber
	danger  = lipgloss.Color("#F43F5E") // Rose
	text    = lipgloss.Color("#F8FAFC") // White
	textDim = lipgloss.Color("#94A3B8") // Slate
	border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textDim)

	bodyStyle = lipgloss.NewStyle().
			Foreground(text)

	hintStyle = lipgloss.NewStyle().
			Foreground(textDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)

	optionStyle = lipgloss.NewStyle().
			Foreground(text).
			PaddingLeft(2)

	optionSelectedStyle = lipgloss.NewStyle().
				Foreground(primary).
				Bold(true)

	optionChosenStyle = lipgloss.NewStyle().
				Foreground(success).
				Bold(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(text).
			Bold(true)

	timerWarnStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	timerDangerStyle = lipgloss.NewStyle().
				Foreground(danger).
				Bold(true)

	correctStyle   = lipgloss.NewStyle().Foreground(success)
	incorrectStyle = lipgloss.NewStyle().Foreground(danger)
)

// scoreGrade maps a percentage score to its display band.
func scoreGrade(percent int) string {
	switch {
	case percent >= 90:
		return "excellent"
	case percent >= 80:
		return "good"
	case percent >= 70:
		return "average"
	case percent >= 60:
		return "fair"
	default:
		return "poor"
	}
}

func gradeStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 80:
		return lipgloss.NewStyle().Foreground(success).Bold(true)
	case percent >= 60:
		return lipgloss.NewStyle().Foreground(warning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(danger).Bold(true)
	}
}
