package components

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/ui/display"
	"github.com/abhisek/quizzical/internal/ui/theme"
)

// AnswerRow renders one question: its prompt and the answer pills styled
// by their display state.
type AnswerRow struct {
	Number  int
	Prompt  string
	Answers []string
	States  []quiz.DisplayState

	// Focused marks the row holding the cursor; Cursor is the answer under
	// it. Both are ignored once the answers are checked.
	Focused bool
	Cursor  int

	Compact bool
}

// NewAnswerRow builds the row for question index of snap.
func NewAnswerRow(snap quiz.Snapshot, index int) AnswerRow {
	q := snap.Questions[index]
	states := make([]quiz.DisplayState, len(q.Answers))
	for i, a := range q.Answers {
		states[i] = snap.DisplayState(index, a)
	}
	return AnswerRow{
		Number:  index + 1,
		Prompt:  q.Prompt,
		Answers: q.Answers,
		States:  states,
	}
}

// View renders the row at the given width.
func (r AnswerRow) View(width int) string {
	prompt := lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(strconv.Itoa(r.Number) + ". " + display.Text(r.Prompt))

	pills := make([]string, len(r.Answers))
	for i, a := range r.Answers {
		ds := r.States[i]
		label := display.Text(a)
		if r.Compact {
			label = strconv.Itoa(i+1) + ") " + label
		}

		var pill string
		if r.Compact {
			pill = compactAnswer(ds).Render(label)
		} else {
			pill = theme.Answer(ds.Style(), ds.IsDisabled).Render(label)
		}
		marker := " "
		if r.Focused && i == r.Cursor {
			marker = theme.Cursor.Render("▸")
		}
		pills[i] = lipgloss.JoinHorizontal(lipgloss.Center, marker, pill)
	}

	var answers string
	if r.Compact {
		answers = strings.Join(pills, "  ")
	} else {
		answers = wrapPills(pills, width)
	}
	return prompt + "\n" + answers
}

func compactAnswer(ds quiz.DisplayState) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(theme.Text)
	switch ds.Style() {
	case quiz.StyleSelected:
		return st.Foreground(theme.Secondary).Bold(true).Underline(true)
	case quiz.StyleCorrect:
		return st.Foreground(theme.Success).Bold(true)
	case quiz.StyleIncorrect:
		return st.Foreground(theme.Error).Strikethrough(true)
	}
	if ds.IsDisabled {
		return st.Foreground(theme.TextDim)
	}
	return st
}

// wrapPills lays pills out left to right, starting a new line when the
// next one would overflow width.
func wrapPills(pills []string, width int) string {
	var lines []string
	var line []string
	used := 0
	for _, p := range pills {
		w := lipgloss.Width(p) + 1
		if used > 0 && used+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, used = nil, 0
		}
		line = append(line, p, " ")
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return strings.Join(lines, "\n")
}
