package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr string
	}{
		{"valid", Question{Prompt: "Q", Correct: "A", Incorrect: []string{"B", "C", "D"}}, ""},
		{"single incorrect is enough", Question{Prompt: "Q", Correct: "True", Incorrect: []string{"False"}}, ""},
		{"empty prompt", Question{Correct: "A", Incorrect: []string{"B"}}, "empty prompt"},
		{"empty correct", Question{Prompt: "Q", Incorrect: []string{"B"}}, "empty correct answer"},
		{"no incorrect", Question{Prompt: "Q", Correct: "A"}, "no incorrect answers"},
		{"empty incorrect", Question{Prompt: "Q", Correct: "A", Incorrect: []string{""}}, "empty incorrect answer"},
		{"correct repeated", Question{Prompt: "Q", Correct: "A", Incorrect: []string{"A"}}, "duplicate answer"},
		{"incorrect repeated", Question{Prompt: "Q", Correct: "A", Incorrect: []string{"B", "B"}}, "duplicate answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateBatch_RejectsEmpty(t *testing.T) {
	assert.ErrorContains(t, validateBatch(nil), "empty batch")
}
