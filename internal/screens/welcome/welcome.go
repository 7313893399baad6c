package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/router"
	"github.com/abhisek/quizzical/internal/screen"
	"github.com/abhisek/quizzical/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const bannerArt = `╔═╗ ╦ ╦ ╦ ╔═╗ ╔═╗ ╦ ╔═╗ ╔═╗ ╦
║═╬╗║ ║ ║ ╔═╝ ╔═╝ ║ ║   ╠═╣ ║
╚═╝╚╚═╝ ╩ ╚═╝ ╚═╝ ╩ ╚═╝ ╩ ╩ ╩═╝`

const bannerCompact = "Q U I Z Z I C A L"

// blob frames drift at the corners of the splash.
var blobFrames = []string{"●", "◉", "○", "◉"}

type tickMsg time.Time

// WelcomeScreen shows a short splash and then replaces itself with the
// home screen. Any key skips ahead.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	banner := bannerArt
	if width < 40 {
		banner = bannerCompact
	}
	sections := []string{style.Render(banner)}

	if w.elapsed >= phase1End {
		frame := blobFrames[w.tickCount%len(blobFrames)]
		blobA := lipgloss.NewStyle().Foreground(theme.Accent).Render(frame)
		blobB := lipgloss.NewStyle().Foreground(theme.Success).Render(frame)

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("Test your knowledge")
		sections = append(sections, "", blobA+"  "+tagline+"  "+blobB)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
