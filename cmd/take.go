package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Phyquie/textquiz/internal/history"
	"github.com/Phyquie/textquiz/internal/llm"
	"github.com/Phyquie/textquiz/internal/logging"
	"github.com/Phyquie/textquiz/internal/quizgen"
	"github.com/Phyquie/textquiz/internal/session"
	"github.com/Phyquie/textquiz/internal/tui"
)

var takeCmd = &cobra.Command{
	Use:   "take [file]",
	Short: "Generate an assessment from a text file and take it",
	Long: `Read source text from a file (or stdin when no file is given), generate
a timed multiple-choice assessment from it, and run the attempt in the
terminal. The result is saved to the local history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTake,
}

func init() {
	takeCmd.Flags().IntP("questions", "n", quizgen.DefaultCount, "Number of questions to generate")
	takeCmd.Flags().DurationP("duration", "t", session.DefaultDuration, "Time limit for the attempt")
}

func runTake(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("questions")
	duration, _ := cmd.Flags().GetDuration("duration")
	if duration <= 0 {
		return fmt.Errorf("invalid duration %s: must be positive", duration)
	}

	source, err := readSource(args)
	if err != nil {
		return err
	}
	if err := quizgen.CheckSource(source); err != nil {
		if errors.Is(err, quizgen.ErrSourceTooShort) {
			return fmt.Errorf("source text must be at least %d characters, got %d",
				quizgen.MinSourceLength, len(source))
		}
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	logger, closeLog := logging.SetupFile(dbPath)
	defer func() { _ = closeLog() }()

	repo, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer repo.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w\nSet GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY and retry", err)
	}

	gen := quizgen.New(provider, quizgen.DefaultConfig(), logger)
	ctrl := session.NewController(gen, repo,
		session.WithDuration(duration),
		session.WithQuestionCount(count),
		session.WithLogger(logger),
		session.WithReleaseFunc(func() {
			logger.Debug().Msg("presentation released")
		}),
	)

	if err := tui.Run(ctrl, source, logger); err != nil {
		// The attempt may still be in flight; force it to a recorded end
		// before reporting the presentation failure.
		ctrl.Teardown()
		return fmt.Errorf("run attempt: %w", err)
	}
	ctrl.Teardown()

	if res := ctrl.Result(); res != nil {
		fmt.Printf("Saved attempt %s: %d%% (%d/%d correct, %s)\n",
			shortID(res.ID), res.ScorePercent, res.CorrectCount, res.TotalQuestions,
			(time.Duration(res.TimeTakenSeconds) * time.Second).String())
	}
	return nil
}

// readSource reads the assessment source text from the named file, or
// from stdin when no file (or "-") is given.
func readSource(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no source file given and stdin is a terminal; pass a file or pipe text in")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
