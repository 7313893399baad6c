package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/quizzical/internal/llm"
)

const llmSystemPrompt = `You write general-knowledge trivia for a casual quiz game.
Every question has exactly one correct answer and three plausible but clearly wrong answers.
Answers must be short, distinct from each other, and never repeat the question text.
Use plain text only: no markup, no numbering, no letters in front of answers.`

// batchSchema constrains the model output to a batch of multiple-choice questions.
var batchSchema = &llm.Schema{
	Name:        "trivia-batch",
	Description: "A batch of multiple-choice trivia questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "A short topic label such as Science or History",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The single correct answer",
						},
						"incorrect_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly three wrong answers",
						},
					},
					"required":             []any{"question", "category", "correct_answer", "incorrect_answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// LLMSource generates questions with a language model instead of a trivia API.
type LLMSource struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// NewLLMSource creates a Source backed by provider. A zero timeout disables the per-fetch bound.
func NewLLMSource(provider llm.Provider, timeout time.Duration) *LLMSource {
	return &LLMSource{
		provider:    provider,
		maxTokens:   2048,
		temperature: 0.9,
		timeout:     timeout,
	}
}

var _ Source = (*LLMSource)(nil)

func (s *LLMSource) Name() string { return "llm:" + s.provider.ModelID() }

type batchOutput struct {
	Questions []Question `json:"questions"`
}

// Fetch asks the model for req.Amount questions.
func (s *LLMSource) Fetch(ctx context.Context, req Request) ([]Question, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "trivia-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      llmSystemPrompt,
		Prompt:      fmt.Sprintf("Write %d multiple-choice trivia questions on varied topics.", req.Amount),
		Schema:      batchSchema,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("decode batch: %w", err))
	}

	qs := out.Questions
	if len(qs) > req.Amount {
		qs = qs[:req.Amount]
	}
	if err := validateBatch(qs); err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return qs, nil
}
