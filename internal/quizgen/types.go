package quizgen

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCount is the standard number of questions in a generated set.
const DefaultCount = 30

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// MinSourceLength is the minimum number of characters of source text
// required before generation is attempted.
const MinSourceLength = 100

// ErrSourceTooShort is returned when the source text is missing or under
// the length threshold. It is the only generation error surfaced to the
// caller; every other failure is absorbed by the fallback set.
var ErrSourceTooShort = fmt.Errorf("source text must be at least %d characters", MinSourceLength)

// Difficulty labels a question's difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single validated multiple-choice question.
// Immutable once accepted into a session.
type Question struct {
	// Text is the question prompt.
	Text string

	// Options holds exactly 4 answer choices. Order is significant.
	Options []string

	// CorrectIndex is the index into Options of the correct answer, 0-3.
	CorrectIndex int

	// Explanation says why the correct answer is correct. Shown after
	// submission.
	Explanation string

	// Difficulty is easy, medium or hard.
	Difficulty Difficulty
}

// QuestionSet is an ordered, validated sequence of questions. A question's
// index is its identity within a session; the order is fixed for the
// session's lifetime.
type QuestionSet struct {
	Questions []Question

	// Fallback is true when the set came from the deterministic local
	// generator rather than the model.
	Fallback bool

	// Warning carries a non-fatal observation from generation, e.g. the
	// model returned a different count than requested. Empty when clean.
	Warning string
}

// Len returns the number of questions in the set.
func (s *QuestionSet) Len() int { return len(s.Questions) }

// ValidationError describes why a candidate question set was rejected.
type ValidationError struct {
	Index   int    // question index, -1 for set-level failures
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid question set: %s", e.Message)
	}
	return fmt.Sprintf("invalid question %d: %s", e.Index, e.Message)
}

// CheckSource validates the generation precondition: non-empty source
// text of at least MinSourceLength characters.
func CheckSource(sourceText string) error {
	if len(strings.TrimSpace(sourceText)) < MinSourceLength {
		return ErrSourceTooShort
	}
	return nil
}

// IsPrecondition reports whether err is the source-text precondition
// failure (the only user-actionable generation error).
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrSourceTooShort)
}
