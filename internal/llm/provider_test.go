package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_RepliesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"n":1}`), Usage: Usage{Input: 10, Output: 5}},
		MockResponse{Content: json.RawMessage(`{"n":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{System: "sys", Prompt: "one"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(first.Content))
	assert.Equal(t, 15, first.Usage.Total())
	assert.Equal(t, StopEnd, first.Stop)

	second, err := mock.Generate(context.Background(), Request{Prompt: "two"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(second.Content))

	require.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "two", mock.Calls[1].Prompt)
}

func TestMockProvider_ExhaustedScript(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	kind, ok := KindOf(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, KindUnavailable, kind)
}

func TestMockProvider_RepeatsAfterScript(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"n":1}`)}).
		Repeat(MockResponse{Content: json.RawMessage(`{"n":0}`)})

	for i, want := range []string{`{"n":1}`, `{"n":0}`, `{"n":0}`} {
		resp, err := mock.Generate(context.Background(), Request{})
		require.NoError(t, err, "call %d", i)
		assert.JSONEq(t, want, string(resp.Content), "call %d", i)
	}
}

func TestMockProvider_ScriptedError(t *testing.T) {
	want := &Error{Kind: KindRateLimited, Provider: "mock"}
	_, err := NewMockProvider(MockResponse{Err: want}).Generate(context.Background(), Request{})
	assert.Same(t, want, err)
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"x"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindInvalidOutput, e.Kind)
	assert.JSONEq(t, `{"name":"x"}`, string(e.Content))
}

func TestFinish_Truncated(t *testing.T) {
	_, err := finish("test", Request{}, json.RawMessage(`{"cut`), StopMaxTokens, Usage{}, "m")
	kind, _ := KindOf(err)
	assert.Equal(t, KindTruncated, kind)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindRateLimited, Provider: "openai", Err: errors.New("slow down")}
	assert.Equal(t, "openai: rate limited: slow down", err.Error())
	assert.Equal(t, "gemini: unavailable", (&Error{Provider: "gemini"}).Error())
}

func TestClassify(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, KindRateLimited, classify("x", 429, cause).Kind)
	assert.Equal(t, KindUnavailable, classify("x", 503, cause).Kind)
	assert.Equal(t, KindUnavailable, classify("x", 0, cause).Kind)
	assert.ErrorIs(t, classify("x", 500, cause), cause)
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestResolveModel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"gemini-flash", "gemini-2.0-flash"},
		{"gpt-4o-mini", "gpt-4o-mini"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.in), tt.in)
	}
}

func TestNewProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
	for range 2 {
		resp, err := p.Generate(context.Background(), Request{Prompt: "q"})
		require.NoError(t, err, "the mock provider serves its sample batch on every call")
		assert.Contains(t, string(resp.Content), "Red Planet")
	}

	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"
	p, err = NewProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, cfg.OpenRouter.Model, p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "openai"}, logger)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
