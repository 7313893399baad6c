package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader reads so the host
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZZICAL_SOURCE", "QUIZZICAL_OPENTDB_URL", "QUIZZICAL_OPENTDB_TIMEOUT",
		"QUIZZICAL_ADDR", "QUIZZICAL_ALLOWED_ORIGINS", "QUIZZICAL_LOG_FILE",
		"QUIZZICAL_LOG_LEVEL", "QUIZZICAL_LLM_PROVIDER",
	} {
		t.Setenv(k, "")
	}
	// Load reads .env from the working directory.
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceOpenTDB, cfg.Source)
	assert.Equal(t, "https://opentdb.com", cfg.OpenTDB.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OpenTDB.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "quizzical.yaml", `
source: llm
opentdb:
  timeout: 3s
server:
  addr: ":9000"
  allowed_origins: ["http://localhost:5173"]
log:
  level: debug
llm:
  provider: mock
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, cfg.Source)
	assert.Equal(t, 3*time.Second, cfg.OpenTDB.Timeout)
	assert.Equal(t, "https://opentdb.com", cfg.OpenTDB.BaseURL, "unset keys keep defaults")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mock", cfg.LLM.Provider)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "quizzical.yaml", "source: llm\nserver:\n  addr: \":9000\"\n")
	t.Setenv("QUIZZICAL_SOURCE", "opentdb")
	t.Setenv("QUIZZICAL_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("QUIZZICAL_OPENTDB_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceOpenTDB, cfg.Source)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.OpenTDB.Timeout)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("QUIZZICAL_ADDR=0.0.0.0:7000\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("QUIZZICAL_ADDR") })
	// godotenv does not override variables that are already set, even empty.
	os.Unsetenv("QUIZZICAL_ADDR")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open config")

	_, err = Load(writeFile(t, "bad.yaml", "sauce: opentdb\n"))
	assert.ErrorContains(t, err, "decode config")

	_, err = Load(writeFile(t, "src.yaml", "source: offline\n"))
	assert.ErrorContains(t, err, "unknown question source")

	_, err = Load(writeFile(t, "lvl.yaml", "log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "invalid log level")
}
