package quiz

// AnswerStyle is how an answer button should be drawn.
type AnswerStyle int

const (
	StylePlain     AnswerStyle = iota
	StyleSelected              // picked, not yet checked
	StyleCorrect               // the right answer, after checking
	StyleIncorrect             // the user's wrong pick, after checking
)

func (s AnswerStyle) String() string {
	switch s {
	case StyleSelected:
		return "selected"
	case StyleCorrect:
		return "correct"
	case StyleIncorrect:
		return "incorrect"
	default:
		return "plain"
	}
}

// DisplayState describes one answer of one question.
type DisplayState struct {
	IsCorrectAnswer bool
	IsSelected      bool

	// IsDisabled is set for every non-correct answer once the session is
	// checked. The correct answer stays enabled so it can be highlighted.
	IsDisabled bool

	checked bool
}

// Style applies the highlighting policy: after checking the correct answer
// is always highlighted and a wrong pick is marked incorrect; before
// checking only the pick is marked.
func (d DisplayState) Style() AnswerStyle {
	switch {
	case d.checked && d.IsCorrectAnswer:
		return StyleCorrect
	case d.checked && d.IsSelected:
		return StyleIncorrect
	case d.IsSelected:
		return StyleSelected
	default:
		return StylePlain
	}
}

// DisplayState reports how answer should be presented for question index.
// An unknown index yields the zero DisplayState.
func (c *Controller) DisplayState(index int, answer string) DisplayState {
	return displayState(c.session.Answers, c.session.Checked, index, answer)
}

// DisplayState is the snapshot form of Controller.DisplayState.
func (s Snapshot) DisplayState(index int, answer string) DisplayState {
	return displayState(s.Answers, s.Checked, index, answer)
}

func displayState(answers []AnswerRecord, checked bool, index int, answer string) DisplayState {
	if index < 0 || index >= len(answers) {
		return DisplayState{}
	}
	rec := answers[index]
	isCorrect := answer == rec.Correct
	return DisplayState{
		IsCorrectAnswer: isCorrect,
		IsSelected:      rec.Answered && answer == rec.Selected,
		IsDisabled:      checked && !isCorrect,
		checked:         checked,
	}
}
