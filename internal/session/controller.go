// Package session drives a single timed attempt from source text to a
// persisted result: question loading, the countdown, answer capture,
// navigation, and a guaranteed single submission however it is
// triggered.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Phyquie/textquiz/internal/history"
	"github.com/Phyquie/textquiz/internal/quizgen"
	"github.com/Phyquie/textquiz/internal/scoring"
)

// DefaultDuration is the standard attempt time limit.
const DefaultDuration = 15 * time.Minute

// Status is the lifecycle state of an attempt. Transitions are monotonic:
// Idle → Loading → InProgress → Submitting → Completed, never backward.
type Status int

const (
	// StatusIdle: controller created, Start not yet called.
	StatusIdle Status = iota
	// StatusLoading: question generation in flight. No answer input is
	// accepted; no question set exists yet.
	StatusLoading
	// StatusInProgress: countdown running, answers and navigation live.
	StatusInProgress
	// StatusSubmitting: submission in flight. Guards re-entrancy;
	// external observers may treat it as Completed.
	StatusSubmitting
	// StatusCompleted: terminal. No further mutation permitted.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusInProgress:
		return "in_progress"
	case StatusSubmitting:
		return "submitting"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ErrAlreadyStarted is returned by Start when the controller has already
// run an attempt. One controller instance owns exactly one attempt.
var ErrAlreadyStarted = fmt.Errorf("session already started")

// Generator produces the question set for an attempt.
type Generator interface {
	Generate(ctx context.Context, sourceText string, targetCount int) (*quizgen.QuestionSet, error)
}

// Clock abstracts wall time so tests can drive the timer without
// sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Controller owns one attempt. All state is mutated only through its
// methods; the internal lock serializes the generation goroutine, the
// ticker, user input and forced-exit signals, so multiple submit
// triggers in flight at once still produce exactly one result.
type Controller struct {
	generator Generator
	repo      history.Repo
	clock     Clock
	log       zerolog.Logger

	// release gives back the exclusive presentation resource (e.g. the
	// alt-screen). Called exactly once at submission, however triggered.
	release func()

	duration      time.Duration
	questionCount int

	mu        sync.Mutex
	id        string
	set       *quizgen.QuestionSet
	answers   map[int]int
	cursor    int
	remaining int
	status    Status
	startedAt time.Time
	result    *history.Record
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the wall clock. For tests.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithDuration overrides the attempt time limit.
func WithDuration(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.duration = d }
}

// WithQuestionCount overrides the requested question count.
func WithQuestionCount(n int) Option {
	return func(ctrl *Controller) { ctrl.questionCount = n }
}

// WithLogger sets the controller's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(ctrl *Controller) { ctrl.log = log }
}

// WithReleaseFunc sets the hook that releases the exclusive presentation
// resource at submission.
func WithReleaseFunc(f func()) Option {
	return func(ctrl *Controller) { ctrl.release = f }
}

// NewController creates a Controller for a single attempt.
func NewController(gen Generator, repo history.Repo, opts ...Option) *Controller {
	c := &Controller{
		generator:     gen,
		repo:          repo,
		clock:         systemClock{},
		log:           zerolog.Nop(),
		duration:      DefaultDuration,
		questionCount: quizgen.DefaultCount,
		status:        StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start generates the question set and begins the attempt. It blocks for
// the duration of generation (the one unbounded suspension point);
// callers that need an event loop run it from a goroutine and poll
// Snapshot. Returns quizgen.ErrSourceTooShort before entering Loading
// when the source text fails the precondition; no session starts in
// that case.
func (c *Controller) Start(ctx context.Context, sourceText string) error {
	c.mu.Lock()
	if c.status != StatusIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	if err := quizgen.CheckSource(sourceText); err != nil {
		c.mu.Unlock()
		return err
	}
	c.status = StatusLoading
	c.mu.Unlock()

	// Never fails for generation reasons: the generator falls back to a
	// deterministic local set.
	set, err := c.generator.Generate(ctx, sourceText, c.questionCount)
	if err != nil {
		c.mu.Lock()
		c.status = StatusIdle
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = uuid.NewString()
	c.set = set
	c.answers = make(map[int]int)
	c.cursor = 0
	c.remaining = int(c.duration.Seconds())
	c.startedAt = c.clock.Now()
	c.status = StatusInProgress

	c.log.Info().
		Str("session_id", c.id).
		Int("questions", set.Len()).
		Bool("fallback", set.Fallback).
		Msg("session started")

	return nil
}

// Tick advances the countdown by one second. When it reaches zero the
// attempt is force-submitted exactly once with autoSubmitted=true. Ticks
// outside InProgress are ignored.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusInProgress {
		return
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.submitLocked(true)
	}
}

// SelectAnswer records the chosen option for the current question,
// overwriting any prior choice for that index. No effect on the timer or
// cursor, and no effect outside InProgress.
func (c *Controller) SelectAnswer(optionIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusInProgress {
		return
	}
	if optionIndex < 0 || optionIndex >= quizgen.OptionCount {
		return
	}
	c.answers[c.cursor] = optionIndex
}

// Next moves the cursor forward one question, clamped at the last.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(c.cursor + 1)
}

// Previous moves the cursor back one question, clamped at the first.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(c.cursor - 1)
}

// GoTo jumps the cursor to the given question index, clamped to the set.
func (c *Controller) GoTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(index)
}

func (c *Controller) moveLocked(index int) {
	if c.status != StatusInProgress {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := c.set.Len() - 1; index > max {
		index = max
	}
	c.cursor = index
}

// SubmitNow performs a user-initiated submission.
func (c *Controller) SubmitNow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitLocked(false)
}

// HandleHidden records the tab-hidden visibility signal. Lower severity
// than unload: logged as suspicious activity, never forces submission.
func (c *Controller) HandleHidden() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusInProgress {
		return
	}
	c.log.Warn().
		Str("session_id", c.id).
		Msg("attempt lost visibility, possible suspicious activity")
}

// HandleUnload reacts to an imminent forced exit by submitting
// synchronously with autoSubmitted=true, so a record exists before the
// process may be discarded.
func (c *Controller) HandleUnload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitLocked(true)
}

// Teardown ends the controller. Mid-attempt teardown is treated as a
// forced auto-submit, not a silent cancel; before the attempt starts it
// does nothing (abandoned, no record required).
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitLocked(true)
}

// submitLocked is the single submission path. The status check is the
// idempotency guard: every trigger (timer expiry, manual submit, unload,
// teardown) funnels here, and only the first caller past the guard
// scores and persists. AutoSubmitted reflects that caller's flag.
func (c *Controller) submitLocked(auto bool) {
	if c.status != StatusInProgress {
		return
	}
	c.status = StatusSubmitting

	elapsed := c.clock.Now().Sub(c.startedAt)
	summary := scoring.Score(c.set, c.answers)

	rec := &history.Record{
		ID:               uuid.NewString(),
		Timestamp:        c.clock.Now(),
		TotalQuestions:   summary.TotalQuestions,
		CorrectCount:     summary.CorrectCount,
		ScorePercent:     summary.ScorePercent,
		TimeTakenSeconds: int(elapsed.Round(time.Second).Seconds()),
		AutoSubmitted:    auto,
		Details:          summary.Details,
	}
	c.result = rec

	// Persistence failures never cost the user their in-memory result.
	if err := c.repo.Append(context.Background(), rec); err != nil {
		c.log.Error().
			Err(err).
			Str("session_id", c.id).
			Msg("failed to persist attempt record")
	}

	// Give back the exclusive presentation resource no matter how
	// submission was triggered.
	if c.release != nil {
		c.release()
	}

	c.status = StatusCompleted

	c.log.Info().
		Str("session_id", c.id).
		Int("score_percent", rec.ScorePercent).
		Bool("auto_submitted", auto).
		Msg("session completed")
}
