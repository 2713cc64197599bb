package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/Phyquie/textquiz/internal/history"
	"github.com/Phyquie/textquiz/internal/quizgen"
	"github.com/Phyquie/textquiz/internal/session"
)

var testSource = strings.Repeat("A passage of source material for the assessment. ", 4)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ string, targetCount int) (*quizgen.QuestionSet, error) {
	set := quizgen.FallbackSet(targetCount)
	set.Fallback = false
	return set, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// startedModel builds a model whose attempt is already in progress.
func startedModel(t *testing.T) (Model, *session.Controller) {
	t.Helper()
	ctrl := session.NewController(stubGenerator{}, history.NewMemoryRepo(),
		session.WithQuestionCount(5),
		session.WithDuration(time.Minute),
	)
	m := New(ctrl, testSource, zerolog.Nop())
	if err := ctrl.Start(context.Background(), testSource); err != nil {
		t.Fatalf("start: %v", err)
	}
	next, _ := m.Update(startedMsg{})
	return next.(Model), ctrl
}

func TestModel_StartTransitionsToQuestion(t *testing.T) {
	m, _ := startedModel(t)
	if m.phase != phaseQuestion {
		t.Fatalf("expected question phase, got %d", m.phase)
	}
}

func TestModel_StartError(t *testing.T) {
	ctrl := session.NewController(stubGenerator{}, history.NewMemoryRepo())
	m := New(ctrl, "short", zerolog.Nop())

	err := ctrl.Start(context.Background(), "short")
	next, _ := m.Update(startedMsg{Err: err})
	m = next.(Model)
	if m.phase != phaseError {
		t.Fatalf("expected error phase, got %d", m.phase)
	}
	if m.renderError() == "" {
		t.Error("expected error view content")
	}
}

func TestModel_AnswerKeys(t *testing.T) {
	m, ctrl := startedModel(t)

	next, _ := m.Update(keyPress('3'))
	m = next.(Model)

	q, _ := ctrl.Question(0)
	if q.Chosen != 2 {
		t.Errorf("pressing 3 must choose index 2, got %d", q.Chosen)
	}

	next, _ = m.Update(keyPress('b'))
	m = next.(Model)
	q, _ = ctrl.Question(0)
	if q.Chosen != 1 {
		t.Errorf("pressing b must choose index 1, got %d", q.Chosen)
	}
}

func TestModel_Navigation(t *testing.T) {
	m, ctrl := startedModel(t)

	next, _ := m.Update(keyPress('n'))
	m = next.(Model)
	if got := ctrl.Snapshot().Cursor; got != 1 {
		t.Errorf("expected cursor 1, got %d", got)
	}

	next, _ = m.Update(keyPress('p'))
	m = next.(Model)
	if got := ctrl.Snapshot().Cursor; got != 0 {
		t.Errorf("expected cursor 0, got %d", got)
	}
}

func TestModel_SubmitFlow(t *testing.T) {
	m, ctrl := startedModel(t)

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	if m.phase != phaseConfirm {
		t.Fatalf("expected confirm phase, got %d", m.phase)
	}

	// Decline first.
	next, _ = m.Update(keyPress('n'))
	m = next.(Model)
	if m.phase != phaseQuestion {
		t.Fatalf("expected question phase after decline, got %d", m.phase)
	}
	if ctrl.Snapshot().Status != session.StatusInProgress {
		t.Fatal("declining must not submit")
	}

	// Then confirm.
	next, _ = m.Update(keyPress('s'))
	m = next.(Model)
	next, _ = m.Update(keyPress('y'))
	m = next.(Model)
	if m.phase != phaseResults {
		t.Fatalf("expected results phase, got %d", m.phase)
	}
	if ctrl.Result() == nil {
		t.Fatal("expected a recorded result")
	}
	if ctrl.Result().AutoSubmitted {
		t.Error("confirmed submit must not be flagged auto")
	}
}

func TestModel_TimerExpiryShowsResults(t *testing.T) {
	m, ctrl := startedModel(t)

	for i := 0; i < 60; i++ {
		next, _ := m.Update(timerTickMsg(time.Now()))
		m = next.(Model)
	}

	if m.phase != phaseResults {
		t.Fatalf("expected results phase after expiry, got %d", m.phase)
	}
	res := ctrl.Result()
	if res == nil || !res.AutoSubmitted {
		t.Error("timer expiry must auto-submit")
	}
}

func TestModel_ViewsRender(t *testing.T) {
	m, _ := startedModel(t)
	m.width, m.height = 80, 24

	if m.renderQuestion() == "" {
		t.Error("question view must render")
	}

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	if m.renderConfirm() == "" {
		t.Error("confirm view must render")
	}

	next, _ = m.Update(keyPress('y'))
	m = next.(Model)
	if !strings.Contains(m.renderResults(), "%") {
		t.Error("results view must show a percentage")
	}

	next, _ = m.Update(keyPress('r'))
	m = next.(Model)
	if m.phase != phaseReview {
		t.Fatalf("expected review phase, got %d", m.phase)
	}
	if m.renderReview() == "" {
		t.Error("review view must render")
	}
}

func TestScoreGrade(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "good"},
		{80, "good"},
		{79, "average"},
		{70, "average"},
		{69, "fair"},
		{60, "fair"},
		{59, "poor"},
		{0, "poor"},
	}
	for _, tt := range tests {
		if got := scoreGrade(tt.percent); got != tt.want {
			t.Errorf("scoreGrade(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
