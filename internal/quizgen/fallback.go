package quizgen

import "fmt"

// fallbackTemplates is the fixed pool the local generator cycles through.
// Every template is schema-valid by construction.
var fallbackTemplates = []Question{
	{
		Text:         "What is the primary purpose of the document?",
		Options:      []string{"To inform readers", "To entertain readers", "To persuade readers", "To confuse readers"},
		CorrectIndex: 0,
		Explanation:  "The document's main purpose is to provide information to the reader.",
		Difficulty:   DifficultyEasy,
	},
	{
		Text:         "Which key concept is emphasized throughout the text?",
		Options:      []string{"Historical events", "Scientific principles", "Main theme", "Secondary details"},
		CorrectIndex: 2,
		Explanation:  "The main theme is consistently emphasized throughout the document.",
		Difficulty:   DifficultyMedium,
	},
	{
		Text:         "What can be inferred from the author's tone?",
		Options:      []string{"Casual approach", "Professional expertise", "Personal opinion", "Uncertain knowledge"},
		CorrectIndex: 1,
		Explanation:  "The author demonstrates professional expertise through their authoritative tone.",
		Difficulty:   DifficultyHard,
	},
}

// FallbackSet deterministically derives count synthetic questions from
// the template pool, cycling and index-qualifying the text. This is the
// availability guarantee: a session can always start, even with no
// reachable model and no network.
func FallbackSet(count int) *QuestionSet {
	questions := make([]Question, count)
	for i := range count {
		base := fallbackTemplates[i%len(fallbackTemplates)]
		q := base
		q.Text = fmt.Sprintf("Question %d: %s", i+1, base.Text)
		q.Explanation = fmt.Sprintf("%s This is question %d of the assessment.", base.Explanation, i+1)
		questions[i] = q
	}
	return &QuestionSet{Questions: questions, Fallback: true}
}
