package quiz

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/screen"
	"github.com/abhisek/quizzical/internal/ui/keys"
)

const spinnerInterval = 120 * time.Millisecond

// QuizScreen runs one quiz session at a time on a shared controller.
//
// Questions occupy rows 0..n-1 and the action button (check or play
// again) is row n.
type QuizScreen struct {
	ctrl *quiz.Controller

	ticket  quiz.Ticket
	cancel  context.CancelFunc
	err     error
	spinner int

	row     int
	cursors []int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen. The session starts when the screen is
// initialized.
func New(ctrl *quiz.Controller) *QuizScreen {
	return &QuizScreen{ctrl: ctrl}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.start()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows progress while answering and the score afterwards.
func (s *QuizScreen) Status() string {
	snap := s.ctrl.Snapshot()
	switch snap.State {
	case quiz.StateActive:
		return fmt.Sprintf("%d/%d answered", snap.Answered(), snap.Total())
	case quiz.StateResults:
		return fmt.Sprintf("%d/%d correct", *snap.Score, snap.Total())
	}
	return ""
}

func (s *QuizScreen) KeyHints() []key.Binding {
	switch s.ctrl.State() {
	case quiz.StateLoading:
		return []key.Binding{keys.Back, keys.Quit}
	case quiz.StateActive:
		return []key.Binding{keys.Up, keys.Down, keys.Left, keys.Right, keys.Select, keys.Check, keys.Back}
	case quiz.StateResults:
		return []key.Binding{keys.Up, keys.Down, keys.Again, keys.Back}
	default:
		retry := key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Try again"))
		return []key.Binding{retry, keys.Back}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		return s.handleFetchDone(msg)

	case spinnerTickMsg:
		if s.ctrl.State() != quiz.StateLoading {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// start begins a new session and schedules its fetch. Any fetch still
// running for an earlier session is cancelled.
func (s *QuizScreen) start() tea.Cmd {
	s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.ticket = s.ctrl.Begin()
	s.err = nil
	s.spinner = 0
	s.row = 0
	s.cursors = nil
	return tea.Batch(s.fetch(ctx, s.ticket), spinnerTick())
}

// Close cancels the in-flight fetch, if any.
func (s *QuizScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// fetch calls the question source off the update loop. Controller.Fetch
// reads no session state, so it is safe to run here.
func (s *QuizScreen) fetch(ctx context.Context, t quiz.Ticket) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return fetchDoneMsg{Result: ctrl.Fetch(ctx, t)}
	}
}

func (s *QuizScreen) handleFetchDone(msg fetchDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Result.Ticket == s.ticket {
		s.Close()
	}
	if !s.ctrl.Complete(msg.Result) {
		return s, nil
	}
	if s.ctrl.State() == quiz.StateIdle {
		s.err = msg.Result.Err
		return s, nil
	}
	s.cursors = make([]int, s.ctrl.Snapshot().Total())
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.ctrl.State() {
	case quiz.StateIdle:
		if key.Matches(msg, keys.Select, keys.Again) {
			return s, s.start()
		}
	case quiz.StateActive:
		return s.handleActiveKey(msg)
	case quiz.StateResults:
		return s.handleResultsKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleActiveKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	snap := s.ctrl.Snapshot()
	n := snap.Total()

	switch {
	case key.Matches(msg, keys.Up):
		s.row = max(0, s.row-1)
	case key.Matches(msg, keys.Down):
		s.row = min(n, s.row+1)
	case key.Matches(msg, keys.Left):
		if s.row < n {
			s.cursors[s.row] = max(0, s.cursors[s.row]-1)
		}
	case key.Matches(msg, keys.Right):
		if s.row < n {
			s.cursors[s.row] = min(len(snap.Questions[s.row].Answers)-1, s.cursors[s.row]+1)
		}
	case key.Matches(msg, keys.Check):
		s.ctrl.Check()
		s.row = n
	case key.Matches(msg, keys.Select):
		if s.row == n {
			s.ctrl.Check()
			return s, nil
		}
		s.ctrl.Select(s.row, snap.Questions[s.row].Answers[s.cursors[s.row]])
		// Move on to the next question once this one is answered.
		s.row = min(n, s.row+1)
	default:
		if c := keys.Choice(msg.String()); c > 0 && s.row < n {
			answers := snap.Questions[s.row].Answers
			if c <= len(answers) {
				s.cursors[s.row] = c - 1
				s.ctrl.Select(s.row, answers[c-1])
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) handleResultsKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	n := s.ctrl.Snapshot().Total()

	switch {
	case key.Matches(msg, keys.Up):
		s.row = max(0, s.row-1)
	case key.Matches(msg, keys.Down):
		s.row = min(n, s.row+1)
	case key.Matches(msg, keys.Again):
		return s, s.start()
	case key.Matches(msg, keys.Select):
		if s.row == n {
			return s, s.start()
		}
	}
	return s, nil
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
