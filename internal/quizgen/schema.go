package quizgen

import "github.com/Phyquie/textquiz/internal/llm"

// SetSchema defines the JSON schema for generated question sets.
var SetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "An array of multiple choice questions derived from source text",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "Clear, specific question text",
				},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Exactly 4 answer choices",
				},
				"correctAnswer": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"maximum":     3,
					"description": "Index (0-3) of the correct option",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "2-3 sentence explanation of why the answer is correct",
				},
				"difficulty": map[string]any{
					"type":        "string",
					"enum":        []any{"easy", "medium", "hard"},
					"description": "Question difficulty",
				},
			},
			"required":             []any{"question", "options", "correctAnswer", "explanation", "difficulty"},
			"additionalProperties": false,
		},
	},
}
