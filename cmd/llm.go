package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Phyquie/textquiz/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show the resolved LLM provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := llm.ResolveConfig()
		if err != nil {
			fmt.Println("No LLM provider configured.")
			fmt.Println()
			fmt.Println("Set one of GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY,")
			fmt.Println("or configure explicitly with TEXTQUIZ_LLM_PROVIDER and the")
			fmt.Println("matching TEXTQUIZ_*_API_KEY variable.")
			return nil
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		switch cfg.Provider {
		case "gemini":
			fmt.Printf("Model:     %s\n", cfg.Gemini.Model)
			fmt.Printf("API key:   %s\n", maskKey(cfg.Gemini.APIKey))
		case "openai":
			fmt.Printf("Model:     %s\n", cfg.OpenAI.Model)
			fmt.Printf("API key:   %s\n", maskKey(cfg.OpenAI.APIKey))
			if cfg.OpenAI.BaseURL != "" {
				fmt.Printf("Base URL:  %s\n", cfg.OpenAI.BaseURL)
			}
		case "anthropic":
			fmt.Printf("Model:     %s\n", cfg.Anthropic.Model)
			fmt.Printf("API key:   %s\n", maskKey(cfg.Anthropic.APIKey))
		}
		fmt.Printf("Timeout:   %s\n", cfg.Timeout)
		fmt.Printf("Retries:   %d (initial wait %s, max %s)\n",
			cfg.Retry.MaxAttempts, cfg.Retry.InitialWait, cfg.Retry.MaxWait)
		return nil
	},
}

// maskKey shows just enough of an API key to confirm which one is set.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "(set)"
	}
	return key[:4] + "…" + key[len(key)-4:]
}
