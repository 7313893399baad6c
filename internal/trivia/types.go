package trivia

import (
	"context"
	"fmt"
)

// TypeMultiple is the Open Trivia DB question type for multiple-choice questions.
const TypeMultiple = "multiple"

// DefaultAmount is the number of questions requested per batch.
const DefaultAmount = 5

// Question is one trivia record as supplied by a Source.
// Text fields are opaque display data and may contain HTML entities.
type Question struct {
	Prompt     string   `json:"question"`
	Correct    string   `json:"correct_answer"`
	Incorrect  []string `json:"incorrect_answers"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// Request describes a batch to fetch.
type Request struct {
	Amount int
	Type   string
}

// DefaultRequest returns the batch request used for a quiz session.
func DefaultRequest() Request {
	return Request{Amount: DefaultAmount, Type: TypeMultiple}
}

// Source supplies batches of trivia questions.
type Source interface {
	// Fetch returns an ordered batch of questions. Every failure is
	// reported as *SourceUnavailableError.
	Fetch(ctx context.Context, req Request) ([]Question, error)

	// Name identifies the source in logs.
	Name() string
}

// Validate checks the structural invariants of a record: a prompt, a
// correct answer, at least one incorrect answer, and no duplicate or
// empty answers.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	if q.Correct == "" {
		return fmt.Errorf("empty correct answer")
	}
	if len(q.Incorrect) == 0 {
		return fmt.Errorf("no incorrect answers")
	}
	seen := map[string]bool{q.Correct: true}
	for _, a := range q.Incorrect {
		if a == "" {
			return fmt.Errorf("empty incorrect answer")
		}
		if seen[a] {
			return fmt.Errorf("duplicate answer %q", a)
		}
		seen[a] = true
	}
	return nil
}

// validateBatch rejects empty batches and batches with any invalid record.
func validateBatch(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("empty batch")
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}
