package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educational assessment creator. You turn source material into high-quality multiple choice questions that test comprehension, analysis, and application of the material.

Rules:
- Each question has exactly 4 options with exactly one correct answer.
- Cover different cognitive levels: recall, understanding, application, analysis.
- Ask about main concepts, details, implications, and connections.
- Make incorrect options plausible but clearly wrong.
- Provide a clear, educational explanation (2-3 sentences) for each correct answer.
- Respond with a JSON array only. Each element has fields: question (string), options (array of exactly 4 strings), correctAnswer (integer 0-3, the index of the correct option), explanation (string), difficulty ("easy", "medium" or "hard").`

// buildPrompt constructs the generation prompt embedding the source text
// and the structural requirements for exactly count questions.
func buildPrompt(sourceText string, count int) string {
	easy, medium, hard := difficultyMix(count)

	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d multiple choice questions from the text below.\n", count)
	fmt.Fprintf(&b, "Difficulty mix: %d easy, %d medium, %d hard.\n", easy, medium, hard)
	b.WriteString("Remember: 4 options per question, correctAnswer is the 0-based index of the correct option.\n")

	b.WriteString("\nText content to analyze:\n")
	b.WriteString(sourceText)

	fmt.Fprintf(&b, "\n\nGenerate exactly %d questions that comprehensively test understanding of the provided content.", count)

	return b.String()
}

// difficultyMix splits count into easy/medium/hard guidance. At the
// standard 30 this yields 10/15/5; other counts keep the same proportions.
func difficultyMix(count int) (easy, medium, hard int) {
	easy = count / 3
	hard = count / 6
	medium = count - easy - hard
	return easy, medium, hard
}
