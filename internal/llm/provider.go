package llm

import (
	"context"
	"encoding/json"
)

// Provider turns a prompt into a JSON reply.
type Provider interface {
	// Generate runs one single-turn request. When req.Schema is set the
	// reply is validated against it before being returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider targets.
	ModelID() string
}

// Request is a system prompt plus one user prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when non-nil, asks for structured output matching it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero keeps the provider default.
	Temperature float64
}

// StopReason says why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a finished, validated reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string // the model that served the request
	Stop    StopReason
}

type Usage struct {
	Input  int
	Output int
}

func (u Usage) Total() int { return u.Input + u.Output }

// finish rejects truncated or off-schema replies and wraps the rest.
func finish(provider string, req Request, content json.RawMessage, stop StopReason, usage Usage, model string) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
	}
	if err := req.Schema.Validate(content); err != nil {
		return nil, &Error{Kind: KindInvalidOutput, Provider: provider, Content: content, Err: err}
	}
	return &Response{Content: content, Usage: usage, Model: model, Stop: stop}, nil
}
