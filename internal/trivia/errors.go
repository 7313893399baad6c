package trivia

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when the source has too few questions for the request.
var ErrNoResults = errors.New("not enough questions available")

// SourceUnavailableError is the single failure kind of a Source. It covers
// network failures, non-success responses and malformed payloads alike.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question source %s unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("question source %s unavailable", e.Source)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// IsSourceUnavailable reports whether err is a SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var su *SourceUnavailableError
	return errors.As(err, &su)
}

func unavailable(source string, err error) error {
	return &SourceUnavailableError{Source: source, Err: err}
}
