package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/Phyquie/textquiz/internal/session"
)

// phase is the presentation phase. It trails the controller status: the
// controller owns the attempt lifecycle, the phase only decides what to
// draw and which keys are live.
type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseConfirm
	phaseResults
	phaseReview
	phaseError
)

// startedMsg is sent when the blocking question generation finishes.
type startedMsg struct {
	Err error
}

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time

// Model is the root Bubble Tea model for one assessment attempt.
type Model struct {
	ctrl   *session.Controller
	source string
	log    zerolog.Logger

	phase  phase
	spin   spinner.Model
	width  int
	height int

	// sel is the highlighted option on the current question.
	sel int

	// reviewOffset is the scroll position in the detailed review.
	reviewOffset int

	errMsg   string
	quitting bool
}

// New creates the attempt model. The controller must be idle.
func New(ctrl *session.Controller, sourceText string, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return Model{
		ctrl:   ctrl,
		source: sourceText,
		log:    log,
		phase:  phaseLoading,
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.spin.Tick)
}

// startCmd runs question generation off the update loop. The controller
// blocks through generation and flips to in-progress on success.
func (m Model) startCmd() tea.Cmd {
	ctrl, source := m.ctrl, m.source
	return func() tea.Msg {
		err := ctrl.Start(context.Background(), source)
		return startedMsg{Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case startedMsg:
		return m.handleStarted(msg)

	case timerTickMsg:
		return m.handleTimerTick()

	case tea.BlurMsg:
		// The terminal lost focus mid-attempt. Recorded but not acted on.
		m.ctrl.HandleHidden()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleStarted(msg startedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.phase = phaseError
		m.errMsg = msg.Err.Error()
		return m, nil
	}
	m.phase = phaseQuestion
	m.syncSel()
	return m, tickCmd()
}

func (m Model) handleTimerTick() (tea.Model, tea.Cmd) {
	m.ctrl.Tick()
	snap := m.ctrl.Snapshot()
	if snap.Status == session.StatusCompleted {
		// Time expired and the attempt auto-submitted.
		m.phase = phaseResults
		return m, nil
	}
	if snap.Status != session.StatusInProgress {
		return m, nil
	}
	return m, tickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Closing the terminal mid-attempt must not lose the work: force an
	// auto-submit before quitting, same as any other teardown path.
	if key == "ctrl+c" {
		m.ctrl.HandleUnload()
		if m.ctrl.Result() != nil && m.phase != phaseResults && m.phase != phaseReview {
			m.phase = phaseResults
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseError:
		m.quitting = true
		return m, tea.Quit

	case phaseQuestion:
		return m.handleQuestionKey(key)

	case phaseConfirm:
		return m.handleConfirmKey(key)

	case phaseResults:
		switch key {
		case "r":
			m.phase = phaseReview
			m.reviewOffset = 0
		case "q", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case phaseReview:
		switch key {
		case "up", "k":
			if m.reviewOffset > 0 {
				m.reviewOffset--
			}
		case "down", "j":
			if res := m.ctrl.Result(); res != nil && m.reviewOffset < len(res.Details)-1 {
				m.reviewOffset++
			}
		case "esc", "b":
			m.phase = phaseResults
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleQuestionKey(key string) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	if snap.Status != session.StatusInProgress {
		return m, nil
	}

	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		m.ctrl.SelectAnswer(idx)
		m.sel = idx

	case "a", "b", "c", "d":
		idx := int(key[0] - 'a')
		m.ctrl.SelectAnswer(idx)
		m.sel = idx

	case "up", "k":
		if m.sel > 0 {
			m.sel--
		}

	case "down", "j":
		if q, ok := m.ctrl.Question(snap.Cursor); ok && m.sel < len(q.Options)-1 {
			m.sel++
		}

	case "enter", " ":
		m.ctrl.SelectAnswer(m.sel)

	case "left", "h", "p":
		m.ctrl.Previous()
		m.syncSel()

	case "right", "l", "n":
		m.ctrl.Next()
		m.syncSel()

	case "u":
		if i := m.ctrl.FirstUnanswered(); i >= 0 {
			m.ctrl.GoTo(i)
			m.syncSel()
		}

	case "s", "esc":
		m.phase = phaseConfirm
	}

	return m, nil
}

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		m.ctrl.SubmitNow()
		if m.ctrl.Result() != nil {
			m.phase = phaseResults
		}
	case "n", "esc":
		m.phase = phaseQuestion
	case "u":
		if i := m.ctrl.FirstUnanswered(); i >= 0 {
			m.ctrl.GoTo(i)
			m.syncSel()
		}
		m.phase = phaseQuestion
	}
	return m, nil
}

// syncSel aligns the option highlight with the captured answer on the
// current question, defaulting to the first option.
func (m *Model) syncSel() {
	snap := m.ctrl.Snapshot()
	if q, ok := m.ctrl.Question(snap.Cursor); ok && q.Answered {
		m.sel = q.Chosen
		return
	}
	m.sel = 0
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	// The attempt runs in the alternate screen. Results render inline so
	// the score card survives program exit.
	v.AltScreen = m.phase == phaseLoading || m.phase == phaseQuestion || m.phase == phaseConfirm

	if m.quitting {
		return v
	}
	if m.width == 0 {
		m.width = 80
	}

	switch m.phase {
	case phaseLoading:
		v.SetContent(m.renderLoading())
	case phaseQuestion:
		v.SetContent(m.renderQuestion())
	case phaseConfirm:
		v.SetContent(m.renderConfirm())
	case phaseResults:
		v.SetContent(m.renderResults())
	case phaseReview:
		v.SetContent(m.renderReview())
	case phaseError:
		v.SetContent(m.renderError())
	}
	return v
}

// Run starts the Bubble Tea program for one attempt and blocks until it
// finishes.
func Run(ctrl *session.Controller, sourceText string, log zerolog.Logger) error {
	p := tea.NewProgram(New(ctrl, sourceText, log))
	_, err := p.Run()
	return err
}
