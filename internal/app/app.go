package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/router"
	"github.com/abhisek/quizzical/internal/screen"
	"github.com/abhisek/quizzical/internal/screens/home"
	quizscreen "github.com/abhisek/quizzical/internal/screens/quiz"
	"github.com/abhisek/quizzical/internal/screens/welcome"
	"github.com/abhisek/quizzical/internal/ui/keys"
	"github.com/abhisek/quizzical/internal/ui/layout"
)

// Options holds the dependencies of the terminal app.
type Options struct {
	// Controller runs the quiz sessions. Required.
	Controller *quiz.Controller

	// SourceName is shown on the home screen.
	SourceName string

	// SkipSplash starts on the home screen.
	SkipSplash bool

	// DirectStart opens the quiz immediately, above the home screen.
	DirectStart bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack described by opts.
func newAppModel(opts Options) AppModel {
	newQuiz := func() screen.Screen { return quizscreen.New(opts.Controller) }
	newHome := func() screen.Screen { return home.New(newQuiz, opts.SourceName) }

	var m AppModel
	switch {
	case opts.DirectStart:
		m.router = router.New(newHome())
		m.start = m.router.Push(newQuiz())
	case opts.SkipSplash:
		m.router = router.New(newHome())
	default:
		splash := welcome.New(newHome)
		m.router = router.New(splash)
		m.start = splash.Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []key.Binding {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return append(hints, keys.Quit)
		}
	}
	if m.router.Depth() > 1 {
		return []key.Binding{keys.Back, keys.Quit}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit}
}

// Run starts the Bubble Tea program.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: no quiz controller")
	}
	p := tea.NewProgram(newAppModel(opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
