package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Phyquie/textquiz/internal/history"
	"github.com/Phyquie/textquiz/internal/quizgen"
)

var testSource = strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// stubGenerator returns a fixed set or error.
type stubGenerator struct {
	set *quizgen.QuestionSet
	err error
}

func (s *stubGenerator) Generate(context.Context, string, int) (*quizgen.QuestionSet, error) {
	return s.set, s.err
}

// failingRepo errors on every append.
type failingRepo struct {
	history.MemoryRepo
}

func (f *failingRepo) Append(context.Context, *history.Record) error {
	return fmt.Errorf("disk full")
}

func fixedSet(n int) *quizgen.QuestionSet {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			Text:         fmt.Sprintf("Q%d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	return &quizgen.QuestionSet{Questions: qs}
}

func startedController(t *testing.T, clock Clock, repo history.Repo, opts ...Option) *Controller {
	t.Helper()
	gen := &stubGenerator{set: fixedSet(30)}
	opts = append([]Option{WithClock(clock), WithQuestionCount(30)}, opts...)
	c := NewController(gen, repo, opts...)
	if err := c.Start(context.Background(), testSource); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c
}

func TestStart(t *testing.T) {
	clock := newFakeClock()
	repo := history.NewMemoryRepo()
	c := startedController(t, clock, repo)

	snap := c.Snapshot()
	if snap.Status != StatusInProgress {
		t.Fatalf("expected InProgress, got %s", snap.Status)
	}
	if snap.TotalQuestions != 30 {
		t.Errorf("expected 30 questions, got %d", snap.TotalQuestions)
	}
	if snap.RemainingSeconds != int(DefaultDuration.Seconds()) {
		t.Errorf("expected %d seconds remaining, got %d", int(DefaultDuration.Seconds()), snap.RemainingSeconds)
	}
	if snap.Cursor != 0 || snap.AnsweredCount != 0 {
		t.Errorf("expected fresh attempt, got cursor %d answered %d", snap.Cursor, snap.AnsweredCount)
	}
	if snap.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestStart_SourceTooShort(t *testing.T) {
	c := NewController(&stubGenerator{set: fixedSet(30)}, history.NewMemoryRepo())
	err := c.Start(context.Background(), "tiny")
	if !errors.Is(err, quizgen.ErrSourceTooShort) {
		t.Fatalf("expected ErrSourceTooShort, got %v", err)
	}
	if c.Snapshot().Status != StatusIdle {
		t.Error("failed precondition must leave the controller idle")
	}
}

func TestStart_Twice(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())
	if err := c.Start(context.Background(), testSource); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestTimerExpiry_AutoSubmits(t *testing.T) {
	clock := newFakeClock()
	repo := history.NewMemoryRepo()
	c := startedController(t, clock, repo, WithDuration(900*time.Second))

	for i := 0; i < 900; i++ {
		clock.Advance(time.Second)
		c.Tick()
	}

	snap := c.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected Completed after timer expiry, got %s", snap.Status)
	}
	if snap.RemainingSeconds != 0 {
		t.Errorf("expected 0 remaining, got %d", snap.RemainingSeconds)
	}

	res := c.Result()
	if res == nil {
		t.Fatal("expected a result")
	}
	if !res.AutoSubmitted {
		t.Error("timer expiry must mark the record auto-submitted")
	}
	if res.ScorePercent != 0 {
		t.Errorf("no answers means 0%%, got %d", res.ScorePercent)
	}
	if res.TimeTakenSeconds != 900 {
		t.Errorf("expected 900s taken, got %d", res.TimeTakenSeconds)
	}

	records, _ := repo.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", len(records))
	}
}

func TestTick_AfterCompletionIgnored(t *testing.T) {
	clock := newFakeClock()
	c := startedController(t, clock, history.NewMemoryRepo(), WithDuration(2*time.Second))

	c.Tick()
	c.Tick()
	c.Tick()
	c.Tick()

	snap := c.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected Completed, got %s", snap.Status)
	}
	if snap.RemainingSeconds != 0 {
		t.Errorf("remaining must stay clamped at 0, got %d", snap.RemainingSeconds)
	}
}

func TestSelectAnswer_And_Score(t *testing.T) {
	clock := newFakeClock()
	repo := history.NewMemoryRepo()
	c := startedController(t, clock, repo)

	// Answer every question correctly.
	for i := 0; i < 30; i++ {
		c.GoTo(i)
		c.SelectAnswer(i % 4)
	}
	if got := c.Snapshot().AnsweredCount; got != 30 {
		t.Fatalf("expected 30 answered, got %d", got)
	}

	clock.Advance(5 * time.Minute)
	c.SubmitNow()

	res := c.Result()
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.ScorePercent != 100 || res.CorrectCount != 30 {
		t.Errorf("expected 100%%, got %d%% (%d correct)", res.ScorePercent, res.CorrectCount)
	}
	if res.AutoSubmitted {
		t.Error("manual submit must not be flagged auto")
	}
	if res.TimeTakenSeconds != 300 {
		t.Errorf("expected 300s taken, got %d", res.TimeTakenSeconds)
	}
}

func TestFallbackSet_FullAttempt(t *testing.T) {
	// Generation is unavailable; the attempt runs on the local set and
	// scores against its stored answer key.
	gen := &stubGenerator{set: quizgen.FallbackSet(30)}
	repo := history.NewMemoryRepo()
	c := NewController(gen, repo, WithClock(newFakeClock()), WithQuestionCount(30))
	if err := c.Start(context.Background(), testSource); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !c.Snapshot().FallbackSet {
		t.Fatal("snapshot must flag the fallback set")
	}

	key := quizgen.FallbackSet(30)
	for i := 0; i < 30; i++ {
		c.GoTo(i)
		c.SelectAnswer(key.Questions[i].CorrectIndex)
	}
	c.SubmitNow()

	res := c.Result()
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.ScorePercent != 100 {
		t.Errorf("expected 100%%, got %d%%", res.ScorePercent)
	}
	if res.AutoSubmitted {
		t.Error("manual submit must not be flagged auto")
	}
}

func TestSelectAnswer_Overwrites(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())

	c.SelectAnswer(1)
	c.SelectAnswer(3)

	q, ok := c.Question(0)
	if !ok {
		t.Fatal("question 0 must exist")
	}
	if q.Chosen != 3 {
		t.Errorf("expected last answer to win, got %d", q.Chosen)
	}
	if got := c.Snapshot().AnsweredCount; got != 1 {
		t.Errorf("overwriting must not double-count, got %d", got)
	}
}

func TestSelectAnswer_OutOfRangeIgnored(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())
	c.SelectAnswer(4)
	c.SelectAnswer(-1)
	if got := c.Snapshot().AnsweredCount; got != 0 {
		t.Errorf("out-of-range options must be ignored, got %d answered", got)
	}
}

func TestNavigation_Clamps(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())

	c.Previous()
	if got := c.Snapshot().Cursor; got != 0 {
		t.Errorf("previous at first question must clamp, got %d", got)
	}

	c.GoTo(99)
	if got := c.Snapshot().Cursor; got != 29 {
		t.Errorf("goto past the end must clamp, got %d", got)
	}

	c.Next()
	if got := c.Snapshot().Cursor; got != 29 {
		t.Errorf("next at last question must clamp, got %d", got)
	}

	c.GoTo(-5)
	if got := c.Snapshot().Cursor; got != 0 {
		t.Errorf("goto before the start must clamp, got %d", got)
	}
}

func TestDoubleSubmit_OneRecord(t *testing.T) {
	repo := history.NewMemoryRepo()
	c := startedController(t, newFakeClock(), repo)

	c.SubmitNow()
	first := c.Result()

	c.SubmitNow()
	c.HandleUnload()
	c.Teardown()

	if c.Result() != first {
		t.Error("later triggers must not replace the result")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
}

func TestUnload_AutoSubmits(t *testing.T) {
	repo := history.NewMemoryRepo()
	c := startedController(t, newFakeClock(), repo)

	c.HandleUnload()

	res := c.Result()
	if res == nil {
		t.Fatal("unload mid-attempt must produce a record")
	}
	if !res.AutoSubmitted {
		t.Error("unload submission must be flagged auto")
	}
}

func TestTeardown_BeforeStart_NoRecord(t *testing.T) {
	repo := history.NewMemoryRepo()
	c := NewController(&stubGenerator{set: fixedSet(30)}, repo)

	c.Teardown()

	if c.Result() != nil {
		t.Error("teardown before start must not create a result")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestHandleHidden_DoesNotSubmit(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())

	c.HandleHidden()

	if c.Snapshot().Status != StatusInProgress {
		t.Error("visibility loss must not end the attempt")
	}
	if c.Result() != nil {
		t.Error("visibility loss must not produce a record")
	}
}

func TestPersistFailure_KeepsResult(t *testing.T) {
	repo := &failingRepo{}
	c := startedController(t, newFakeClock(), repo)

	c.SelectAnswer(0)
	c.SubmitNow()

	if c.Snapshot().Status != StatusCompleted {
		t.Error("persistence failure must not block completion")
	}
	if c.Result() == nil {
		t.Error("the in-memory result must survive a persistence failure")
	}
}

func TestReleaseFunc_CalledOnce(t *testing.T) {
	calls := 0
	c := startedController(t, newFakeClock(), history.NewMemoryRepo(),
		WithReleaseFunc(func() { calls++ }))

	c.SubmitNow()
	c.HandleUnload()
	c.Teardown()

	if calls != 1 {
		t.Errorf("release must fire exactly once, got %d", calls)
	}
}

func TestInput_IgnoredBeforeStart(t *testing.T) {
	c := NewController(&stubGenerator{set: fixedSet(30)}, history.NewMemoryRepo())

	c.SelectAnswer(0)
	c.Next()
	c.Tick()
	c.SubmitNow()

	if c.Snapshot().Status != StatusIdle {
		t.Error("input before start must be ignored")
	}
}

func TestStart_GeneratorError(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("context canceled")}
	c := NewController(gen, history.NewMemoryRepo())

	if err := c.Start(context.Background(), testSource); err == nil {
		t.Fatal("expected error from generator")
	}
	if c.Snapshot().Status != StatusIdle {
		t.Error("failed start must revert to idle")
	}
}

func TestFirstUnanswered(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())

	if got := c.FirstUnanswered(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	c.SelectAnswer(1)
	if got := c.FirstUnanswered(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}

	for i := 0; i < 30; i++ {
		c.GoTo(i)
		c.SelectAnswer(0)
	}
	if got := c.FirstUnanswered(); got != -1 {
		t.Errorf("expected -1 when fully answered, got %d", got)
	}
}

func TestQuestion_HidesAnswerKey(t *testing.T) {
	c := startedController(t, newFakeClock(), history.NewMemoryRepo())

	q, ok := c.Question(0)
	if !ok {
		t.Fatal("question 0 must exist")
	}
	if q.Chosen != -1 || q.Answered {
		t.Error("fresh question must read as unanswered")
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}

	if _, ok := c.Question(30); ok {
		t.Error("out-of-range question index must not resolve")
	}
}
