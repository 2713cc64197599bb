package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Phyquie/textquiz/internal/llm"
	"github.com/Phyquie/textquiz/internal/logging"
	"github.com/Phyquie/textquiz/internal/quizgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Generate questions from a text file without taking the assessment (no database)",
	Long: `Generate questions for the given source text and print them with answers
and explanations.

This is a stateless developer tool: nothing is timed, scored, or saved.
Useful for evaluating question quality against a source text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("questions", "n", 5, "Number of questions to generate")
	previewCmd.Flags().Bool("json", false, "Print the question set as JSON")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("questions")
	asJSON, _ := cmd.Flags().GetBool("json")

	source, err := readSource(args)
	if err != nil {
		return err
	}
	if err := quizgen.CheckSource(source); err != nil {
		return fmt.Errorf("source text must be at least %d characters, got %d",
			quizgen.MinSourceLength, len(source))
	}

	logger := logging.Setup(os.Stderr)
	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := quizgen.New(provider, quizgen.DefaultConfig(), logger)
	set, err := gen.Generate(ctx, source, count)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	if set.Fallback {
		fmt.Println("Generation unavailable, showing the local fallback set.")
		fmt.Println()
	} else if set.Warning != "" {
		fmt.Println(set.Warning)
		fmt.Println()
	}

	labels := []string{"A", "B", "C", "D"}
	for i, q := range set.Questions {
		fmt.Printf("── Question %d/%d (%s) ──\n", i+1, set.Len(), q.Difficulty)
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			marker := " "
			if j == q.CorrectIndex {
				marker = "*"
			}
			fmt.Printf(" %s %s) %s\n", marker, labels[j], opt)
		}
		if q.Explanation != "" {
			fmt.Printf("   %s\n", q.Explanation)
		}
		fmt.Println()
	}
	return nil
}
