package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzical/internal/trivia"
)

type fakeSource struct {
	batches [][]trivia.Question
	errs    []error
	calls   int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context, _ trivia.Request) ([]trivia.Question, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.batches) {
		return f.batches[i], nil
	}
	return f.batches[len(f.batches)-1], nil
}

func fiveQuestions() []trivia.Question {
	return []trivia.Question{
		{Prompt: "Q1", Correct: "A", Incorrect: []string{"B", "C", "D"}},
		{Prompt: "Q2", Correct: "E", Incorrect: []string{"F", "G", "H"}},
		{Prompt: "Q3", Correct: "I", Incorrect: []string{"J", "K", "L"}},
		{Prompt: "Q4", Correct: "M", Incorrect: []string{"N", "O", "P"}},
		{Prompt: "Q5", Correct: "Q", Incorrect: []string{"R", "S", "T"}},
	}
}

func newTestController(src trivia.Source) *Controller {
	return NewController(src,
		WithShuffler(rand.New(rand.NewPCG(1, 2)).Shuffle),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestNewController_StartsIdle(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.False(t, snap.Started)
	assert.False(t, snap.Checked)
	assert.Nil(t, snap.Score)
	assert.Empty(t, snap.Questions)
}

func TestStart_BuildsShuffledQuestions(t *testing.T) {
	src := &fakeSource{batches: [][]trivia.Question{fiveQuestions()}}
	c := newTestController(src)

	require.NoError(t, c.Start(context.Background()))

	snap := c.Snapshot()
	require.Equal(t, StateActive, snap.State)
	require.Equal(t, 5, snap.Total())
	require.Len(t, snap.Answers, 5)

	for i, q := range snap.Questions {
		rec := fiveQuestions()[i]
		assert.Equal(t, rec.Prompt, q.Prompt, "question order is kept")

		want := append([]string{rec.Correct}, rec.Incorrect...)
		got := append([]string(nil), q.Answers...)
		sort.Strings(want)
		sort.Strings(got)
		assert.Equal(t, want, got, "answers are a permutation of correct + incorrect")

		n := 0
		for _, a := range q.Answers {
			if a == rec.Correct {
				n++
			}
		}
		assert.Equal(t, 1, n, "correct answer appears exactly once")

		assert.False(t, snap.Answers[i].Answered)
		assert.Equal(t, rec.Correct, snap.Answers[i].Correct)
	}
}

func TestBegin_EntersLoading(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})

	tk := c.Begin()
	assert.Equal(t, StateLoading, c.State())
	assert.NotEmpty(t, tk.SessionID)
	assert.Equal(t, c.Snapshot().ID, tk.SessionID)

	// Selections and checks have no effect while loading.
	c.Select(0, "A")
	c.Check()
	assert.Equal(t, StateLoading, c.State())
	assert.Nil(t, c.Snapshot().Score)
}

func TestCheck_AllCorrect(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	for i, q := range fiveQuestions() {
		c.Select(i, q.Correct)
	}
	c.Check()

	snap := c.Snapshot()
	assert.Equal(t, StateResults, snap.State)
	require.NotNil(t, snap.Score)
	assert.Equal(t, 5, *snap.Score)
}

func TestCheck_UnansweredCountAsWrong(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	c.Select(0, "A")
	c.Select(2, "I")
	c.Select(4, "Q")
	c.Check()

	snap := c.Snapshot()
	require.NotNil(t, snap.Score)
	assert.Equal(t, 3, *snap.Score)
	assert.Equal(t, 3, snap.Answered())
	assert.False(t, snap.Answers[1].Answered)
	assert.False(t, snap.Answers[3].Answered)
}

func TestCheck_MixedThenPlayAgain(t *testing.T) {
	src := &fakeSource{batches: [][]trivia.Question{fiveQuestions()}}
	c := newTestController(src)
	require.NoError(t, c.Start(context.Background()))

	c.Select(0, "A") // right
	c.Select(1, "F") // wrong
	c.Select(2, "I") // right
	c.Select(3, "N") // wrong
	c.Check()

	snap := c.Snapshot()
	require.NotNil(t, snap.Score)
	assert.Equal(t, 2, *snap.Score)
	assert.Equal(t, 4, snap.Answered())

	tk := c.Begin()
	assert.Equal(t, StateLoading, c.State())
	snap = c.Snapshot()
	assert.Nil(t, snap.Score)
	assert.False(t, snap.Checked)
	assert.Empty(t, snap.Questions)
	assert.Empty(t, snap.Answers)

	require.True(t, c.Complete(c.Fetch(context.Background(), tk)))
	snap = c.Snapshot()
	assert.Equal(t, StateActive, snap.State)
	assert.Equal(t, 0, snap.Answered(), "previous selections are gone")
	assert.Equal(t, 2, src.calls)
}

// The last selection for a question wins.
func TestSelect_ChangeSelection(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	c.Select(0, "B")
	c.Select(0, "C")
	c.Select(0, "A")
	c.Check()

	snap := c.Snapshot()
	assert.Equal(t, "A", snap.Answers[0].Selected)
	require.NotNil(t, snap.Score)
	assert.Equal(t, 1, *snap.Score)
}

func TestStart_SourceFailure(t *testing.T) {
	cause := &trivia.SourceUnavailableError{Source: "fake", Err: errors.New("connection refused")}
	c := newTestController(&fakeSource{errs: []error{cause}})

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.True(t, trivia.IsSourceUnavailable(err))

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Questions)
	assert.Nil(t, snap.Score)
}

func TestComplete_EmptyBatchReturnsToIdle(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})

	tk := c.Begin()
	applied := c.Complete(FetchResult{Ticket: tk})
	assert.True(t, applied)
	assert.Equal(t, StateIdle, c.State())
}

func TestComplete_DiscardsStaleResult(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})

	first := c.Begin()
	second := c.Begin()

	stale := FetchResult{Ticket: first, Questions: fiveQuestions()[:1]}
	assert.False(t, c.Complete(stale))
	assert.Equal(t, StateLoading, c.State(), "stale result must not populate the session")

	assert.True(t, c.Complete(FetchResult{Ticket: second, Questions: fiveQuestions()}))
	assert.Equal(t, 5, c.Snapshot().Total())
}

func TestComplete_StaleErrorDoesNotResetSession(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})

	first := c.Begin()
	second := c.Begin()

	assert.False(t, c.Complete(FetchResult{Ticket: first, Err: errors.New("late failure")}))
	assert.Equal(t, StateLoading, c.State())
	assert.True(t, c.Complete(FetchResult{Ticket: second, Questions: fiveQuestions()}))
	assert.Equal(t, StateActive, c.State())
}

func TestComplete_IgnoredOutsideLoading(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	tk := c.Begin()
	require.True(t, c.Complete(FetchResult{Ticket: tk, Questions: fiveQuestions()}))

	// Duplicate delivery for the same ticket.
	assert.False(t, c.Complete(FetchResult{Ticket: tk, Questions: fiveQuestions()[:2]}))
	assert.Equal(t, 5, c.Snapshot().Total())
}

func TestSelect_UnknownIndexIsNoop(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	c.Select(-1, "A")
	c.Select(5, "A")
	assert.Equal(t, 0, c.Snapshot().Answered())
}

func TestSelect_IgnoredAfterCheck(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	c.Select(0, "B")
	c.Check()
	c.Select(0, "A")

	snap := c.Snapshot()
	assert.Equal(t, "B", snap.Answers[0].Selected)
	assert.Equal(t, 0, *snap.Score)
}

func TestCheck_Idempotent(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	c.Select(0, "A")
	c.Check()
	first := *c.Snapshot().Score
	c.Check()
	assert.Equal(t, first, *c.Snapshot().Score)
	assert.Equal(t, StateResults, c.State())
}

func TestCheck_WhileIdleIsNoop(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	c.Check()
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Snapshot().Score)
}

func TestCheck_ScoreWithinBounds(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		c := NewController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}},
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		require.NoError(t, c.Start(context.Background()))

		r := rand.New(rand.NewPCG(seed, seed+1))
		snap := c.Snapshot()
		want := 0
		for i, q := range snap.Questions {
			if r.IntN(3) == 0 {
				continue
			}
			pick := q.Answers[r.IntN(len(q.Answers))]
			c.Select(i, pick)
			if pick == q.Correct {
				want++
			}
		}
		c.Check()

		got := *c.Snapshot().Score
		assert.Equal(t, want, got)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 5)
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	c := newTestController(&fakeSource{batches: [][]trivia.Question{fiveQuestions()}})
	require.NoError(t, c.Start(context.Background()))

	snap := c.Snapshot()
	snap.Questions[0].Answers[0] = "tampered"
	snap.Answers[0].Selected = "tampered"

	fresh := c.Snapshot()
	assert.NotEqual(t, "tampered", fresh.Questions[0].Answers[0])
	assert.Empty(t, fresh.Answers[0].Selected)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "results", StateResults.String())
	assert.Equal(t, "unknown", State(42).String())
}
