package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Phyquie/textquiz/internal/history"
	"github.com/Phyquie/textquiz/internal/scoring"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past attempts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past attempts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		records, err := repo.List(context.Background())
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-8s  %-19s  %6s  %8s  %8s  %s\n",
			"ID", "Taken", "Score", "Correct", "Time", "Auto")
		fmt.Println(strings.Repeat("─", 64))
		for _, r := range records {
			auto := ""
			if r.AutoSubmitted {
				auto = "✓"
			}
			fmt.Printf("%-8s  %-19s  %5d%%  %5d/%-2d  %8s  %s\n",
				shortID(r.ID),
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.ScorePercent,
				r.CorrectCount, r.TotalQuestions,
				(time.Duration(r.TimeTakenSeconds) * time.Second).String(),
				auto,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one attempt with its per-question breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		rec, err := findRecord(repo, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", rec.ID)
		fmt.Printf("Taken:   %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Score:   %d%% (%d/%d correct)\n", rec.ScorePercent, rec.CorrectCount, rec.TotalQuestions)
		fmt.Printf("Time:    %s\n", (time.Duration(rec.TimeTakenSeconds) * time.Second).String())
		if rec.AutoSubmitted {
			fmt.Println("Submitted automatically.")
		}

		if len(rec.Details) == 0 {
			fmt.Println("\nNo per-question details recorded.")
			return nil
		}

		fmt.Println()
		for i, d := range rec.Details {
			mark := "✗"
			if d.IsCorrect {
				mark = "✓"
			}
			fmt.Printf("%s Q%d. %s\n", mark, i+1, d.QuestionText)
			chosen := d.ChosenOptionText
			if chosen == scoring.Unanswered {
				chosen = "(unanswered)"
			}
			fmt.Printf("   Your answer:    %s\n", chosen)
			if !d.IsCorrect {
				fmt.Printf("   Correct answer: %s\n", d.CorrectOptionText)
			}
			if d.Explanation != "" {
				fmt.Printf("   %s\n", d.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		rec, err := findRecord(repo, args[0])
		if err != nil {
			return err
		}
		if err := repo.Delete(context.Background(), rec.ID); err != nil {
			return fmt.Errorf("delete attempt: %w", err)
		}
		fmt.Println("Deleted", shortID(rec.ID))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Clear(context.Background()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func openRepo(cmd *cobra.Command) (*history.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	repo, err := history.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return repo, nil
}

// findRecord resolves a full or shortened record ID. A prefix must match
// exactly one record.
func findRecord(repo *history.Store, id string) (*history.Record, error) {
	ctx := context.Background()

	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up attempt: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	records, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	var matches []history.Record
	for _, r := range records {
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no attempt found for %q", id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d attempts, use a longer prefix", id, len(matches))
	}
}
