package quiz

import (
	"github.com/abhisek/quizzical/internal/trivia"
)

// State is the session-level phase derived from the session flags.
type State int

const (
	StateIdle    State = iota // not started, no score
	StateLoading              // started, waiting for the question source
	StateActive               // questions shown, selections open
	StateResults              // checked, score frozen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Question is a trivia question prepared for display.
type Question struct {
	Prompt     string
	Correct    string
	Incorrect  []string
	Category   string
	Difficulty string

	// Answers is the correct answer plus every incorrect answer in
	// display order. The correct answer appears exactly once.
	Answers []string
}

// AnswerRecord tracks the selection for one question.
type AnswerRecord struct {
	// Selected is the chosen answer; meaningful only when Answered is true.
	Selected string
	Answered bool

	// Correct is copied from the question when the session is built.
	Correct string
}

// IsCorrect reports whether the selection exactly matches the correct answer.
// A missing selection is never correct.
func (r AnswerRecord) IsCorrect() bool {
	return r.Answered && r.Selected == r.Correct
}

// Session is the full state of one quiz run.
type Session struct {
	// ID identifies the session in logs and snapshots.
	ID string

	// Questions in display order; indices are stable for the session.
	Questions []Question

	// Answers is indexed like Questions.
	Answers []AnswerRecord

	Started bool
	Checked bool

	// Score is nil until the answers are checked.
	Score *int
}

// State derives the phase from the session flags.
func (s *Session) State() State {
	switch {
	case !s.Started:
		return StateIdle
	case s.Checked:
		return StateResults
	case len(s.Questions) == 0:
		return StateLoading
	default:
		return StateActive
	}
}

// newQuestion derives the display form of a source record.
func newQuestion(rec trivia.Question, shuffle Shuffler) Question {
	answers := make([]string, 0, len(rec.Incorrect)+1)
	answers = append(answers, rec.Correct)
	answers = append(answers, rec.Incorrect...)
	shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	return Question{
		Prompt:     rec.Prompt,
		Correct:    rec.Correct,
		Incorrect:  append([]string(nil), rec.Incorrect...),
		Category:   rec.Category,
		Difficulty: rec.Difficulty,
		Answers:    answers,
	}
}

func (q Question) clone() Question {
	q.Incorrect = append([]string(nil), q.Incorrect...)
	q.Answers = append([]string(nil), q.Answers...)
	return q
}
