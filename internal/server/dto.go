package server

import (
	"github.com/abhisek/quizzical/internal/quiz"
)

// Answer text is sent as received from the question source. Browsers must
// insert it as text, not markup.

type sessionDTO struct {
	ID        string        `json:"id,omitempty"`
	State     string        `json:"state"`
	Started   bool          `json:"started"`
	Checked   bool          `json:"checked"`
	Score     *int          `json:"score"`
	Total     int           `json:"total"`
	Answered  int           `json:"answered"`
	Questions []questionDTO `json:"questions"`
}

type questionDTO struct {
	Index      int      `json:"index"`
	Prompt     string   `json:"prompt"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Answers    []string `json:"answers"`
	Selected   *string  `json:"selected"`

	// Correct is only revealed once the session is checked.
	Correct string `json:"correct,omitempty"`
}

type answerDTO struct {
	Text       string `json:"text"`
	IsSelected bool   `json:"is_selected"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
	IsDisabled bool   `json:"is_disabled"`
	Style      string `json:"style"`
}

type questionDetailDTO struct {
	questionDTO
	Display []answerDTO `json:"display"`
}

type selectRequest struct {
	Question *int   `json:"question"`
	Answer   string `json:"answer"`
}

type errorDTO struct {
	Error   string      `json:"error"`
	Session *sessionDTO `json:"session,omitempty"`
}

func newSessionDTO(snap quiz.Snapshot) sessionDTO {
	out := sessionDTO{
		ID:        snap.ID,
		State:     snap.State.String(),
		Started:   snap.Started,
		Checked:   snap.Checked,
		Score:     snap.Score,
		Total:     snap.Total(),
		Answered:  snap.Answered(),
		Questions: make([]questionDTO, len(snap.Questions)),
	}
	for i := range snap.Questions {
		out.Questions[i] = newQuestionDTO(snap, i)
	}
	return out
}

func newQuestionDTO(snap quiz.Snapshot, i int) questionDTO {
	q := snap.Questions[i]
	a := snap.Answers[i]
	out := questionDTO{
		Index:      i,
		Prompt:     q.Prompt,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Answers:    q.Answers,
	}
	if a.Answered {
		sel := a.Selected
		out.Selected = &sel
	}
	if snap.Checked {
		out.Correct = q.Correct
	}
	return out
}

func newQuestionDetailDTO(snap quiz.Snapshot, i int) questionDetailDTO {
	out := questionDetailDTO{questionDTO: newQuestionDTO(snap, i)}
	for _, text := range snap.Questions[i].Answers {
		ds := snap.DisplayState(i, text)
		a := answerDTO{
			Text:       text,
			IsSelected: ds.IsSelected,
			IsDisabled: ds.IsDisabled,
			Style:      ds.Style().String(),
		}
		if snap.Checked {
			correct := ds.IsCorrectAnswer
			a.IsCorrect = &correct
		}
		out.Display = append(out.Display, a)
	}
	return out
}
