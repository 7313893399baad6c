package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzical/internal/llm"
	"github.com/abhisek/quizzical/internal/trivia"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM question source",
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved LLM provider settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		llmCfg := cfg.LLM
		found := llm.DiscoverKey(&llmCfg)
		printLLMConfig(cmd.OutOrStdout(), llmCfg, found)
		return nil
	},
}

var llmGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of questions and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer closeLog()

		provider, err := newProvider(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		src := trivia.NewLLMSource(provider, cfg.LLM.Timeout)

		qs, err := src.Fetch(cmd.Context(), trivia.Request{Amount: count, Type: trivia.TypeMultiple})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	},
}

func init() {
	llmGenerateCmd.Flags().Int("count", trivia.DefaultAmount, "Number of questions to generate")

	llmCmd.AddCommand(llmConfigCmd)
	llmCmd.AddCommand(llmGenerateCmd)
}

func printLLMConfig(w io.Writer, cfg llm.Config, keyFound bool) {
	var model, key string
	switch cfg.Provider {
	case "anthropic":
		model, key = cfg.Anthropic.Model, cfg.Anthropic.APIKey
	case "openai":
		model, key = cfg.OpenAI.Model, cfg.OpenAI.APIKey
	case "gemini":
		model, key = cfg.Gemini.Model, cfg.Gemini.APIKey
	case "openrouter":
		model, key = cfg.OpenRouter.Model, cfg.OpenRouter.APIKey
	case "mock":
		model = "mock"
	}

	fmt.Fprintf(w, "%-10s %s\n", "Provider:", cfg.Provider)
	fmt.Fprintf(w, "%-10s %s\n", "Model:", model)
	fmt.Fprintf(w, "%-10s %s\n", "API key:", maskKey(key))
	fmt.Fprintf(w, "%-10s %s\n", "Timeout:", cfg.Timeout)
	fmt.Fprintf(w, "%-10s %d\n", "Retries:", cfg.Retry.MaxAttempts)
	if !keyFound {
		fmt.Fprintln(w, "\nNo API key found. Set QUIZZICAL_<PROVIDER>_API_KEY or the vendor's own variable.")
	}
}

// maskKey keeps the last four characters of an API key.
func maskKey(k string) string {
	if k == "" {
		return "(not set)"
	}
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", 8) + k[len(k)-4:]
}
