package quiz

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/quizzical/internal/trivia"
)

// Shuffler permutes n elements through swap, like rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Ticket identifies one fetch. Results carrying an older generation than
// the controller's current one are stale and are discarded.
type Ticket struct {
	Generation uint64
	SessionID  string
}

// FetchResult is the outcome of one question-source call.
type FetchResult struct {
	Ticket    Ticket
	Questions []trivia.Question
	Err       error
}

// Controller owns a quiz session and implements its state machine.
//
// A Controller is not safe for concurrent use: callers serialize access
// (the TUI through its update loop, the HTTP server through a mutex).
// Fetch is the exception; it reads no session state and may run on
// another goroutine.
type Controller struct {
	source  trivia.Source
	request trivia.Request
	shuffle Shuffler
	logger  *slog.Logger

	session    Session
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithShuffler replaces the answer-order permutation.
func WithShuffler(s Shuffler) Option {
	return func(c *Controller) { c.shuffle = s }
}

// WithLogger sets the logger used to report fetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRequest overrides the batch request sent to the source.
func WithRequest(r trivia.Request) Option {
	return func(c *Controller) { c.request = r }
}

// NewController creates an idle controller drawing questions from source.
func NewController(source trivia.Source, opts ...Option) *Controller {
	c := &Controller{
		source:  source,
		request: trivia.DefaultRequest(),
		shuffle: rand.Shuffle,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Begin starts a new session: it marks the session started, clears the
// score and checked flag, and discards the previous questions and answers.
// The returned ticket must accompany the fetch result.
func (c *Controller) Begin() Ticket {
	c.generation++
	c.session = Session{
		ID:      uuid.New().String(),
		Started: true,
	}
	return Ticket{Generation: c.generation, SessionID: c.session.ID}
}

// Fetch requests a batch from the question source. It does not touch
// session state.
func (c *Controller) Fetch(ctx context.Context, t Ticket) FetchResult {
	qs, err := c.source.Fetch(ctx, c.request)
	return FetchResult{Ticket: t, Questions: qs, Err: err}
}

// Complete applies a fetch result and reports whether it was applied.
// Results for a superseded ticket are dropped. On failure the session
// returns to idle and the error is logged; questions are left untouched.
func (c *Controller) Complete(res FetchResult) bool {
	if res.Ticket.Generation != c.generation {
		c.logger.Debug("discarding stale fetch result",
			slog.String("session", res.Ticket.SessionID),
			slog.Uint64("generation", res.Ticket.Generation),
			slog.Uint64("current", c.generation))
		return false
	}
	if c.session.State() != StateLoading {
		return false
	}

	if res.Err == nil && len(res.Questions) == 0 {
		res.Err = &trivia.SourceUnavailableError{Source: c.source.Name()}
	}
	if res.Err != nil {
		c.logger.Error("fetching questions failed",
			slog.String("session", c.session.ID),
			slog.String("source", c.source.Name()),
			slog.Any("error", res.Err))
		c.session.Started = false
		return true
	}

	questions := make([]Question, len(res.Questions))
	answers := make([]AnswerRecord, len(res.Questions))
	for i, rec := range res.Questions {
		questions[i] = newQuestion(rec, c.shuffle)
		answers[i] = AnswerRecord{Correct: rec.Correct}
	}
	c.session.Questions = questions
	c.session.Answers = answers

	c.logger.Info("session ready",
		slog.String("session", c.session.ID),
		slog.String("source", c.source.Name()),
		slog.Int("questions", len(questions)))
	return true
}

// Start runs Begin, Fetch and Complete in sequence. It returns the fetch
// error, if any; the session is already back to idle in that case.
func (c *Controller) Start(ctx context.Context) error {
	res := c.Fetch(ctx, c.Begin())
	c.Complete(res)
	return res.Err
}

// Select records answer as the choice for question index. It is a no-op
// once the answers are checked, while loading, or for an unknown index.
func (c *Controller) Select(index int, answer string) {
	if c.session.State() != StateActive {
		return
	}
	if index < 0 || index >= len(c.session.Answers) {
		return
	}
	rec := &c.session.Answers[index]
	rec.Selected = answer
	rec.Answered = true
}

// Check scores the session and freezes the selections. Repeated calls,
// and calls outside an active session, change nothing.
func (c *Controller) Check() {
	if c.session.State() != StateActive {
		return
	}
	score := 0
	for i := range c.session.Questions {
		if c.session.Answers[i].IsCorrect() {
			score++
		}
	}
	c.session.Score = &score
	c.session.Checked = true

	c.logger.Info("session checked",
		slog.String("session", c.session.ID),
		slog.Int("score", score),
		slog.Int("total", len(c.session.Questions)))
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.session.State()
}

// Snapshot returns a deep copy of the session for rendering.
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	snap := Snapshot{
		ID:        s.ID,
		State:     s.State(),
		Started:   s.Started,
		Checked:   s.Checked,
		Questions: make([]Question, len(s.Questions)),
		Answers:   append([]AnswerRecord(nil), s.Answers...),
	}
	for i, q := range s.Questions {
		snap.Questions[i] = q.clone()
	}
	if s.Score != nil {
		score := *s.Score
		snap.Score = &score
	}
	return snap
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID        string
	State     State
	Questions []Question
	Answers   []AnswerRecord
	Started   bool
	Checked   bool
	Score     *int
}

// Total is the number of questions in the session.
func (s Snapshot) Total() int { return len(s.Questions) }

// Answered counts the questions with a selection.
func (s Snapshot) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a.Answered {
			n++
		}
	}
	return n
}
