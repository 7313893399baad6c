package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/quiz"
)

// Color palette
var (
	Primary   = lipgloss.Color("#4D5B9E") // Indigo
	Secondary = lipgloss.Color("#D6DBF5") // Periwinkle
	Accent    = lipgloss.Color("#FFFAD1") // Lemon
	Success   = lipgloss.Color("#94D7A2") // Mint
	Error     = lipgloss.Color("#F8BCBC") // Blush
	Text      = lipgloss.Color("#F5F7FB") // White
	TextDim   = lipgloss.Color("#8A93B8") // Slate
	BgDark    = lipgloss.Color("#293264") // Navy
	BgCard    = lipgloss.Color("#1E2448") // Dark Navy
	Border    = lipgloss.Color("#3B4578") // Slate Blue
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Meta = lipgloss.NewStyle().
		Foreground(TextDim)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Answer pills. Each state keeps the same border width so rows don't shift
// when the style changes.
var (
	answerBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	AnswerPlain = answerBase.
			Foreground(Text).
			BorderForeground(Border)

	AnswerSelected = answerBase.
			Foreground(BgDark).
			Background(Secondary).
			BorderForeground(Secondary).
			Bold(true)

	AnswerCorrect = answerBase.
			Foreground(BgDark).
			Background(Success).
			BorderForeground(Success).
			Bold(true)

	AnswerIncorrect = answerBase.
			Foreground(BgDark).
			Background(Error).
			BorderForeground(Error).
			Strikethrough(true)

	AnswerDisabled = answerBase.
			Foreground(TextDim).
			BorderForeground(Border).
			Faint(true)
)

// Answer returns the pill style for a display style.
func Answer(s quiz.AnswerStyle, disabled bool) lipgloss.Style {
	switch s {
	case quiz.StyleSelected:
		return AnswerSelected
	case quiz.StyleCorrect:
		return AnswerCorrect
	case quiz.StyleIncorrect:
		return AnswerIncorrect
	}
	if disabled {
		return AnswerDisabled
	}
	return AnswerPlain
}

// Buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	Cursor = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)
