package quizgen

import "testing"

func intPtr(i int) *int { return &i }

func validRaw() rawQuestion {
	return rawQuestion{
		Question:      "What drives the water cycle?",
		Options:       []string{"The sun", "The moon", "The wind", "The tides"},
		CorrectAnswer: intPtr(0),
		Explanation:   "Solar energy drives evaporation.",
		Difficulty:    "easy",
	}
}

func TestValidate_Valid(t *testing.T) {
	qs, verr := Validate([]rawQuestion{validRaw()})
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Text != "What drives the water cycle?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if q.CorrectIndex != 0 {
		t.Errorf("unexpected correct index: %d", q.CorrectIndex)
	}
	if q.Difficulty != DifficultyEasy {
		t.Errorf("unexpected difficulty: %q", q.Difficulty)
	}
}

func TestValidate_RejectsWholeSet(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rawQuestion)
	}{
		{"empty question", func(r *rawQuestion) { r.Question = "   " }},
		{"three options", func(r *rawQuestion) { r.Options = r.Options[:3] }},
		{"five options", func(r *rawQuestion) { r.Options = append(r.Options, "extra") }},
		{"blank option", func(r *rawQuestion) { r.Options[2] = "  " }},
		{"missing answer", func(r *rawQuestion) { r.CorrectAnswer = nil }},
		{"answer too high", func(r *rawQuestion) { r.CorrectAnswer = intPtr(4) }},
		{"negative answer", func(r *rawQuestion) { r.CorrectAnswer = intPtr(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := validRaw()
			bad := validRaw()
			tt.mutate(&bad)

			// One broken element rejects the whole set.
			qs, verr := Validate([]rawQuestion{good, bad})
			if verr == nil {
				t.Fatalf("expected validation error, got %d questions", len(qs))
			}
			if verr.Index != 1 {
				t.Errorf("expected failure at index 1, got %d", verr.Index)
			}
		})
	}
}

func TestValidate_EmptySet(t *testing.T) {
	_, verr := Validate(nil)
	if verr == nil {
		t.Fatal("expected validation error for empty set")
	}
	if verr.Index != -1 {
		t.Errorf("expected index -1 for empty set, got %d", verr.Index)
	}
}

func TestValidate_TrimsFields(t *testing.T) {
	r := validRaw()
	r.Question = "  padded?  "
	r.Options[0] = " The sun "
	r.Explanation = " spaced "

	qs, verr := Validate([]rawQuestion{r})
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if qs[0].Text != "padded?" {
		t.Errorf("question not trimmed: %q", qs[0].Text)
	}
	if qs[0].Options[0] != "The sun" {
		t.Errorf("option not trimmed: %q", qs[0].Options[0])
	}
	if qs[0].Explanation != "spaced" {
		t.Errorf("explanation not trimmed: %q", qs[0].Explanation)
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"easy", DifficultyEasy},
		{"EASY", DifficultyEasy},
		{" hard ", DifficultyHard},
		{"medium", DifficultyMedium},
		{"extreme", DifficultyMedium},
		{"", DifficultyMedium},
	}
	for _, tt := range tests {
		if got := normalizeDifficulty(tt.in); got != tt.want {
			t.Errorf("normalizeDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
