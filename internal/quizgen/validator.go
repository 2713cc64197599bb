package quizgen

import "strings"

// Validate converts a sequence of untrusted candidate questions into
// validated Questions. It rejects the whole candidate set if any element
// is structurally broken: missing fields, wrong option count, answer
// index out of range, or empty-after-trim text. A set with fewer
// questions than requested is accepted as long as at least one question
// passes; an empty set is itself a validation failure.
func Validate(candidates []rawQuestion) ([]Question, *ValidationError) {
	if len(candidates) == 0 {
		return nil, &ValidationError{Index: -1, Message: "no questions in response"}
	}

	out := make([]Question, 0, len(candidates))
	for i, c := range candidates {
		if strings.TrimSpace(c.Question) == "" {
			return nil, &ValidationError{Index: i, Message: "question text is empty"}
		}
		if len(c.Options) != OptionCount {
			return nil, &ValidationError{Index: i, Message: "expected exactly 4 options"}
		}
		for _, opt := range c.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, &ValidationError{Index: i, Message: "option text is empty"}
			}
		}
		if c.CorrectAnswer == nil {
			return nil, &ValidationError{Index: i, Message: "correctAnswer is missing"}
		}
		if *c.CorrectAnswer < 0 || *c.CorrectAnswer >= OptionCount {
			return nil, &ValidationError{Index: i, Message: "correctAnswer out of range [0,3]"}
		}

		out = append(out, Question{
			Text:         strings.TrimSpace(c.Question),
			Options:      trimAll(c.Options),
			CorrectIndex: *c.CorrectAnswer,
			Explanation:  strings.TrimSpace(c.Explanation),
			Difficulty:   normalizeDifficulty(c.Difficulty),
		})
	}

	return out, nil
}

func trimAll(opts []string) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = strings.TrimSpace(o)
	}
	return out
}

// normalizeDifficulty maps unknown difficulty labels to medium rather
// than rejecting the question. Difficulty guides display only; it never
// affects scoring.
func normalizeDifficulty(d string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(d))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
