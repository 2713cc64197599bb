package session

import "github.com/Phyquie/textquiz/internal/history"

// Snapshot is the read-only view of the attempt that the presentation
// layer renders from. It exposes no mutable internal state.
type Snapshot struct {
	SessionID        string
	Status           Status
	Cursor           int
	RemainingSeconds int
	AnsweredCount    int
	TotalQuestions   int

	// FallbackSet is true when the attempt runs on the locally generated
	// set rather than model output.
	FallbackSet bool

	// Warning carries the generator's non-fatal observation, if any.
	Warning string
}

// Snapshot returns the current view of the attempt.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		SessionID:        c.id,
		Status:           c.status,
		Cursor:           c.cursor,
		RemainingSeconds: c.remaining,
		AnsweredCount:    len(c.answers),
	}
	if c.set != nil {
		snap.TotalQuestions = c.set.Len()
		snap.FallbackSet = c.set.Fallback
		snap.Warning = c.set.Warning
	}
	return snap
}

// Question returns the question at index i, if the set is loaded and i
// is in range.
func (c *Controller) Question(i int) (Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set == nil || i < 0 || i >= c.set.Len() {
		return Question{}, false
	}
	q := c.set.Questions[i]
	chosen, answered := c.answers[i]
	if !answered {
		chosen = -1
	}
	return Question{
		Index:    i,
		Text:     q.Text,
		Options:  q.Options,
		Chosen:   chosen,
		Answered: answered,
	}, true
}

// Question is a render-ready view of one question. The correct index and
// explanation are deliberately absent: they are revealed only through
// the attempt result after submission.
type Question struct {
	Index    int
	Text     string
	Options  []string
	Chosen   int // -1 when unanswered
	Answered bool
}

// Answered reports which question indices have a captured answer.
func (c *Controller) Answered() map[int]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[int]bool, len(c.answers))
	for i := range c.answers {
		out[i] = true
	}
	return out
}

// FirstUnanswered returns the lowest question index with no captured
// answer, or -1 when every question is answered.
func (c *Controller) FirstUnanswered() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set == nil {
		return -1
	}
	for i := range c.set.Questions {
		if _, ok := c.answers[i]; !ok {
			return i
		}
	}
	return -1
}

// Result returns the attempt result, or nil before submission. The
// record is immutable once created.
func (c *Controller) Result() *history.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}
