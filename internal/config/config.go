// Package config loads Quizzical settings from defaults, an optional YAML
// file, a .env file and QUIZZICAL_* environment variables, in increasing
// order of precedence. Command-line flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizzical/internal/llm"
	"github.com/abhisek/quizzical/internal/trivia"
)

// Question source names.
const (
	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
)

type Config struct {
	// Source selects the question source: "opentdb" or "llm".
	Source string `yaml:"source"`

	OpenTDB OpenTDBConfig `yaml:"opentdb"`
	LLM     llm.Config    `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type OpenTDBConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	// File receives the log output. Empty means stderr for the
	// non-interactive commands and no logging for the TUI.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Source: SourceOpenTDB,
		OpenTDB: OpenTDBConfig{
			BaseURL: trivia.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		LLM: llm.DefaultConfig(),
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. path names an optional YAML file; a
// missing .env file is not an error, a missing explicit path is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the QUIZZICAL_* variables that are set.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Source, "QUIZZICAL_SOURCE")
	set(&cfg.OpenTDB.BaseURL, "QUIZZICAL_OPENTDB_URL")
	if v := os.Getenv("QUIZZICAL_OPENTDB_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OpenTDB.Timeout = d
		}
	}
	set(&cfg.Server.Addr, "QUIZZICAL_ADDR")
	if v := os.Getenv("QUIZZICAL_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	set(&cfg.Log.File, "QUIZZICAL_LOG_FILE")
	set(&cfg.Log.Level, "QUIZZICAL_LOG_LEVEL")

	llm.ApplyEnv(&cfg.LLM)
}

// Validate checks the settings that do not depend on the chosen source.
// LLM keys are checked when the LLM source is built.
func (c Config) Validate() error {
	switch c.Source {
	case SourceOpenTDB, SourceLLM:
	default:
		return fmt.Errorf("unknown question source %q (want %s or %s)", c.Source, SourceOpenTDB, SourceLLM)
	}
	if c.OpenTDB.Timeout <= 0 {
		return fmt.Errorf("opentdb timeout must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return lvl, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
