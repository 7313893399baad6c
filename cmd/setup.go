package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizzical/internal/config"
	"github.com/abhisek/quizzical/internal/llm"
	"github.com/abhisek/quizzical/internal/trivia"
)

// loadConfig reads the config file, .env and environment, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger opens the configured log destination. Without a log file, tui
// loggers discard output and others write to stderr. The returned func
// closes the file.
func newLogger(cfg config.Config, tui bool) (*slog.Logger, func(), error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case cfg.Log.File != "" && tui:
		f, err := tea.LogToFile(cfg.Log.File, "quizzical")
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	case tui:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
}

// newSource builds the question source selected by cfg.
func newSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (trivia.Source, error) {
	switch cfg.Source {
	case config.SourceOpenTDB:
		return trivia.NewOpenTDB(
			trivia.WithBaseURL(cfg.OpenTDB.BaseURL),
			trivia.WithTimeout(cfg.OpenTDB.Timeout),
		), nil
	case config.SourceLLM:
		provider, err := newProvider(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return trivia.NewLLMSource(provider, cfg.LLM.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown question source %q", cfg.Source)
	}
}

func newProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) (llm.Provider, error) {
	llmCfg := cfg.LLM
	if !llm.DiscoverKey(&llmCfg) {
		return nil, fmt.Errorf("LLM provider not configured: %w", llmCfg.Validate())
	}
	return llm.NewProvider(ctx, llmCfg, logger)
}
