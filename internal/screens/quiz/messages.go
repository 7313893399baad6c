package quiz

import (
	"time"

	"github.com/abhisek/quizzical/internal/quiz"
)

// fetchDoneMsg carries a question-source result back to the update loop.
type fetchDoneMsg struct {
	Result quiz.FetchResult
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
