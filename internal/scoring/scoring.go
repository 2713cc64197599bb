// Package scoring computes attempt results from a question set and the
// captured answers. Pure functions only: identical input always produces
// identical output.
package scoring

import (
	"math"

	"github.com/Phyquie/textquiz/internal/quizgen"
)

// Unanswered is the sentinel chosen-option text for questions the user
// never answered.
const Unanswered = "unanswered"

// DetailedResult records the outcome for a single question. The slice of
// these is always parallel to the question set.
type DetailedResult struct {
	QuestionText      string `json:"question"`
	ChosenOptionText  string `json:"chosenOption"`
	CorrectOptionText string `json:"correctOption"`
	IsCorrect         bool   `json:"isCorrect"`
	Explanation       string `json:"explanation"`
}

// Summary is the scored outcome of an attempt, before session metadata
// (timing, attribution) is attached.
type Summary struct {
	TotalQuestions int
	CorrectCount   int
	ScorePercent   int
	Details        []DetailedResult
}

// Score grades answers against the question set. Unanswered indices are
// scored as incorrect, never as errors. answers maps question index to
// chosen option index.
func Score(set *quizgen.QuestionSet, answers map[int]int) Summary {
	details := make([]DetailedResult, len(set.Questions))
	correct := 0

	for i, q := range set.Questions {
		d := DetailedResult{
			QuestionText:      q.Text,
			CorrectOptionText: q.Options[q.CorrectIndex],
			Explanation:       q.Explanation,
			ChosenOptionText:  Unanswered,
		}

		if chosen, ok := answers[i]; ok && chosen >= 0 && chosen < len(q.Options) {
			d.ChosenOptionText = q.Options[chosen]
			d.IsCorrect = chosen == q.CorrectIndex
		}

		if d.IsCorrect {
			correct++
		}
		details[i] = d
	}

	return Summary{
		TotalQuestions: len(set.Questions),
		CorrectCount:   correct,
		ScorePercent:   Percent(correct, len(set.Questions)),
		Details:        details,
	}
}

// Percent returns round-half-up(100 * correct / total). Zero total scores
// zero.
func Percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
