package quizgen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Phyquie/textquiz/internal/llm"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the model response. A full
	// 30-question set is a long completion.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8000,
		Temperature: 0.7,
	}
}

// Generator produces validated question sets from source text.
//
// Generate never fails for generation reasons: any transport, parse or
// validation failure falls back to a deterministic local set of the
// requested size. The only error it returns is the source-text
// precondition.
type Generator struct {
	provider llm.Provider
	config   Config
	log      zerolog.Logger
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config, log zerolog.Logger) *Generator {
	return &Generator{provider: provider, config: cfg, log: log}
}

// Generate turns sourceText into a question set of targetCount questions.
// The model may return a different count; that is tolerated with a
// warning on the set. The fallback path always yields exactly
// targetCount.
func (g *Generator) Generate(ctx context.Context, sourceText string, targetCount int) (*QuestionSet, error) {
	if err := CheckSource(sourceText); err != nil {
		return nil, err
	}
	if targetCount <= 0 {
		targetCount = DefaultCount
	}

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(sourceText, targetCount),
		Schema:      SetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		g.log.Warn().Err(err).Msg("generation request failed, using fallback set")
		return FallbackSet(targetCount), nil
	}

	candidates, err := parseResponse(string(resp.Content))
	if err != nil {
		g.log.Warn().Err(err).Msg("unparseable model response, using fallback set")
		return FallbackSet(targetCount), nil
	}

	questions, verr := Validate(candidates)
	if verr != nil {
		g.log.Warn().Err(verr).Msg("model response failed validation, using fallback set")
		return FallbackSet(targetCount), nil
	}

	set := &QuestionSet{Questions: questions}
	if len(questions) != targetCount {
		set.Warning = fmt.Sprintf("generated %d questions instead of %d", len(questions), targetCount)
		g.log.Warn().
			Int("got", len(questions)).
			Int("want", targetCount).
			Msg("question count mismatch")
	}

	return set, nil
}
