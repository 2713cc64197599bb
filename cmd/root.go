package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Phyquie/textquiz/internal/history"
)

var rootCmd = &cobra.Command{
	Use:   "textquiz",
	Short: "Turn any text into a timed assessment",
	Long:  "Textquiz reads a passage of text, generates a timed multiple-choice assessment from it, and keeps your attempt history on this device.",
}

func Execute() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TEXTQUIZ_DB env var)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then TEXTQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, history.EnsureDir(p)
	}
	return history.DefaultDBPath()
}
