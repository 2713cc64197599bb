package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawQuestion is the untrusted shape of a single question as returned by
// the model, before validation.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// parseResponse strips formatting noise from the model output and decodes
// it as a sequence of candidate questions.
func parseResponse(body string) ([]rawQuestion, error) {
	cleaned := stripCodeFences(body)

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return raw, nil
}

// stripCodeFences removes a Markdown code fence wrapper, if present.
// Models sometimes wrap JSON output in ```json fences despite being asked
// not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
