package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizzical/internal/router"
	"github.com/abhisek/quizzical/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func TestHome_StartPushesQuiz(t *testing.T) {
	calls := 0
	h := New(func() screen.Screen { calls++; return &stubScreen{} }, "opentdb")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from Start quiz")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if push.Screen.Title() != "Quiz" {
		t.Errorf("pushed %q, want Quiz", push.Screen.Title())
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
}

func TestHome_QuitItem(t *testing.T) {
	h := New(func() screen.Screen { return &stubScreen{} }, "")

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHome_View(t *testing.T) {
	h := New(func() screen.Screen { return &stubScreen{} }, "opentdb")
	view := ansi.Strip(h.View(100, 30))
	for _, want := range []string{"Test your knowledge", "Start quiz", "Quit", "questions from opentdb"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_CompactTitle(t *testing.T) {
	h := New(func() screen.Screen { return &stubScreen{} }, "")
	if !strings.Contains(ansi.Strip(h.View(60, 16)), "Q · U · I · Z") {
		t.Error("expected compact title in a small area")
	}
}
