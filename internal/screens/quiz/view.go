package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/ui/components"
	"github.com/abhisek/quizzical/internal/ui/display"
	"github.com/abhisek/quizzical/internal/ui/layout"
	"github.com/abhisek/quizzical/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *QuizScreen) View(width, height int) string {
	snap := s.ctrl.Snapshot()
	switch snap.State {
	case quiz.StateLoading:
		return s.renderLoading(width, height)
	case quiz.StateActive, quiz.StateResults:
		return s.renderQuestions(snap, width, height)
	default:
		return s.renderIdle(width, height)
	}
}

func (s *QuizScreen) renderLoading(width, height int) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	text := lipgloss.NewStyle().Foreground(theme.Accent).Render(frame) +
		theme.Meta.Render("  Loading questions...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

func (s *QuizScreen) renderIdle(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.ErrorText.Render("Couldn't load questions."))
	if s.err != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Meta.
			Width(min(width-8, 70)).
			Align(lipgloss.Center).
			Render(display.Text(s.err.Error())))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter to try again or Esc to go back."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderQuestions(snap quiz.Snapshot, width, height int) string {
	cw := min(width-4, 96)
	compact := layout.IsCompactHeight(height)
	n := snap.Total()

	var sections []string

	if snap.State == quiz.StateActive {
		sections = append(sections,
			components.NewProgressBar("Answered", snap.Answered(), n, cw).View())
	}

	for i := range snap.Questions {
		row := components.NewAnswerRow(snap, i)
		row.Compact = compact
		if snap.State == quiz.StateActive && i == s.row {
			row.Focused = true
			if i < len(s.cursors) {
				row.Cursor = s.cursors[i]
			}
		}
		sections = append(sections, row.View(cw))
	}

	sections = append(sections, s.renderFooter(snap))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	content := strings.Join(sections, sep)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(content))
}

// renderFooter shows the check button, or the score line and play-again
// button once checked.
func (s *QuizScreen) renderFooter(snap quiz.Snapshot) string {
	onButton := s.row == snap.Total()

	if snap.State == quiz.StateResults {
		score := theme.Body.Bold(true).Render(ScoreLine(*snap.Score, snap.Total()))
		again := components.NewButton("Play again", onButton, nil).View()
		return lipgloss.JoinHorizontal(lipgloss.Center, score, "   ", again)
	}
	return components.NewButton("Check answers", onButton, nil).View()
}

// ScoreLine is the results message shown after checking.
func ScoreLine(score, total int) string {
	return fmt.Sprintf("You scored %d/%d correct answers", score, total)
}
