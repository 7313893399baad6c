package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/router"
	"github.com/abhisek/quizzical/internal/screen"
	"github.com/abhisek/quizzical/internal/ui/components"
	"github.com/abhisek/quizzical/internal/ui/theme"
)

// HomeScreen is the start page: title, tagline and the start/quit menu.
type HomeScreen struct {
	menu   components.Menu
	source string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. newQuiz builds the quiz screen pushed when the
// user starts a quiz; source names the question source for the footer line.
func New(newQuiz func() screen.Screen, source string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newQuiz()}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		source: source,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, height < 18),
		theme.Subtitle.Width(cw).Render("Test your knowledge"),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()),
	}
	if h.source != "" {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("questions from "+h.source))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
