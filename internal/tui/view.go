package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Phyquie/textquiz/internal/scoring"
)

const lowTimeThreshold = 300 // seconds left before the timer turns amber

func (m Model) renderLoading() string {
	body := fmt.Sprintf("\n\n\n  %s Generating your assessment...\n\n  %s",
		m.spin.View(),
		hintStyle.Render("Reading the source text and preparing 30 questions."))
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(body)
}

func (m Model) renderError() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(danger).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to exit.", m.errMsg))
}

func (m Model) renderQuestion() string {
	snap := m.ctrl.Snapshot()
	q, ok := m.ctrl.Question(snap.Cursor)
	if !ok {
		return ""
	}

	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("textquiz"),
		subtitleStyle.Render(fmt.Sprintf("  Question %d of %d", snap.Cursor+1, snap.TotalQuestions)),
	)
	b.WriteString(lipgloss.PlaceHorizontal(m.width-12, lipgloss.Left, header))
	b.WriteString(m.renderTimer(snap.RemainingSeconds))
	b.WriteString("\n")

	if snap.FallbackSet {
		b.WriteString(hintStyle.Render("  Running on practice questions: generation was unavailable."))
		b.WriteString("\n")
	} else if snap.Warning != "" {
		b.WriteString(hintStyle.Render("  " + snap.Warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	card := cardStyle.Width(min(m.width-4, 76)).Render(bodyStyle.Render(q.Text))
	b.WriteString(card)
	b.WriteString("\n\n")

	labels := []string{"A", "B", "C", "D"}
	for i, opt := range q.Options {
		line := fmt.Sprintf("%s) %s", labels[i], opt)
		switch {
		case i == q.Chosen && i == m.sel:
			b.WriteString(optionChosenStyle.Render("  > [" + line + "]"))
		case i == q.Chosen:
			b.WriteString(optionChosenStyle.Render("    [" + line + "]"))
		case i == m.sel:
			b.WriteString(optionSelectedStyle.Render("  >  " + line))
		default:
			b.WriteString(optionStyle.Render("   " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderNavGrid(snap.Cursor, snap.TotalQuestions))
	b.WriteString("\n")
	b.WriteString(m.renderProgress(snap.AnsweredCount, snap.TotalQuestions))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("  1-4/a-d answer · ←/→ move · u first unanswered · s submit · ctrl+c quit"))

	return b.String()
}

func (m Model) renderTimer(remaining int) string {
	label := fmt.Sprintf("⏱ %02d:%02d", remaining/60, remaining%60)
	switch {
	case remaining < 60:
		return timerDangerStyle.Render(label)
	case remaining < lowTimeThreshold:
		return timerWarnStyle.Render(label)
	default:
		return timerStyle.Render(label)
	}
}

// renderNavGrid draws one cell per question, ten per row. Answered cells
// are filled, the current cell is bracketed.
func (m Model) renderNavGrid(cursor, total int) string {
	answered := m.ctrl.Answered()
	var b strings.Builder
	b.WriteString("  ")
	for i := 0; i < total; i++ {
		cell := "·"
		if answered[i] {
			cell = "●"
		}
		switch {
		case i == cursor:
			b.WriteString(optionSelectedStyle.Render("[" + cell + "]"))
		case answered[i]:
			b.WriteString(optionChosenStyle.Render(" " + cell + " "))
		default:
			b.WriteString(subtitleStyle.Render(" " + cell + " "))
		}
		if (i+1)%10 == 0 && i != total-1 {
			b.WriteString("\n  ")
		}
	}
	return b.String()
}

// renderProgress draws a horizontal answered-count bar with a label.
func (m Model) renderProgress(answered, total int) string {
	label := subtitleStyle.Render(fmt.Sprintf("  Answered %d/%d  ", answered, total))

	barWidth := min(m.width-lipgloss.Width(label)-4, 40)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := 0
	if total > 0 {
		filled = barWidth * answered / total
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := lipgloss.NewStyle().Background(success).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(border).Render(strings.Repeat(" ", barWidth-filled))
	return label + bar
}

func (m Model) renderConfirm() string {
	snap := m.ctrl.Snapshot()
	unanswered := snap.TotalQuestions - snap.AnsweredCount

	var body strings.Builder
	body.WriteString(titleStyle.Render("Submit assessment?"))
	body.WriteString("\n\n")
	body.WriteString(bodyStyle.Render(fmt.Sprintf("Answered %d of %d questions.", snap.AnsweredCount, snap.TotalQuestions)))
	body.WriteString("\n")
	if unanswered > 0 {
		body.WriteString(timerWarnStyle.Render(fmt.Sprintf("%d unanswered, they will score as incorrect.", unanswered)))
		body.WriteString("\n\n")
		body.WriteString(hintStyle.Render("y submit · n keep going · u review unanswered"))
	} else {
		body.WriteString("\n")
		body.WriteString(hintStyle.Render("y submit · n keep going"))
	}
	body.WriteString("\n")
	body.WriteString(m.renderTimer(snap.RemainingSeconds))

	card := cardStyle.BorderForeground(primary).Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) renderResults() string {
	res := m.ctrl.Result()
	if res == nil {
		return ""
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render("Assessment complete"))
	body.WriteString("\n\n")

	grade := scoreGrade(res.ScorePercent)
	body.WriteString(gradeStyle(res.ScorePercent).Render(fmt.Sprintf("%d%%  (%s)", res.ScorePercent, grade)))
	body.WriteString("\n\n")
	body.WriteString(bodyStyle.Render(fmt.Sprintf("Correct    %d/%d", res.CorrectCount, res.TotalQuestions)))
	body.WriteString("\n")
	body.WriteString(bodyStyle.Render(fmt.Sprintf("Time       %02d:%02d", res.TimeTakenSeconds/60, res.TimeTakenSeconds%60)))
	if res.AutoSubmitted {
		body.WriteString("\n")
		body.WriteString(timerWarnStyle.Render("Submitted automatically."))
	}

	card := cardStyle.Render(body.String())

	return fmt.Sprintf("\n%s\n\n%s\n", card,
		hintStyle.Render("  r review answers · q quit"))
}

func (m Model) renderReview() string {
	res := m.ctrl.Result()
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Review"))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d of %d correct", res.CorrectCount, res.TotalQuestions)))
	b.WriteString("\n\n")

	visible := 4
	if m.height > 0 {
		visible = max(1, (m.height-6)/7)
	}
	end := min(m.reviewOffset+visible, len(res.Details))
	for i := m.reviewOffset; i < end; i++ {
		b.WriteString(m.renderDetail(i, res.Details[i]))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf("  %d-%d of %d · ↑/↓ scroll · b back · q quit",
		m.reviewOffset+1, end, len(res.Details))))
	return b.String()
}

func (m Model) renderDetail(i int, d scoring.DetailedResult) string {
	var b strings.Builder

	mark := incorrectStyle.Render("✗")
	if d.IsCorrect {
		mark = correctStyle.Render("✓")
	}
	b.WriteString(fmt.Sprintf("  %s Q%d. %s\n", mark, i+1, bodyStyle.Render(d.QuestionText)))

	chosen := d.ChosenOptionText
	if chosen == scoring.Unanswered {
		chosen = hintStyle.Render("(unanswered)")
	}
	b.WriteString(subtitleStyle.Render("     Your answer:    "))
	if d.IsCorrect {
		b.WriteString(correctStyle.Render(chosen))
	} else {
		b.WriteString(incorrectStyle.Render(chosen))
	}
	b.WriteString("\n")
	if !d.IsCorrect {
		b.WriteString(subtitleStyle.Render("     Correct answer: "))
		b.WriteString(correctStyle.Render(d.CorrectOptionText))
		b.WriteString("\n")
	}
	if d.Explanation != "" {
		b.WriteString(hintStyle.Render("     " + d.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
