package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies provider failures for the retry decorator.
type ErrorKind int

const (
	KindUnavailable   ErrorKind = iota // outage, network failure, bad credentials
	KindRateLimited                    // HTTP 429
	KindInvalidOutput                  // reply missing or not matching the schema
	KindTruncated                      // reply cut off at MaxTokens
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is returned by every provider.
type Error struct {
	Kind     ErrorKind
	Provider string
	Status   int // HTTP status, when the API answered

	// RetryAfter is the server's requested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content is the raw reply for KindInvalidOutput and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err when it carries an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// classify wraps an SDK error given the HTTP status it carried, or 0.
func classify(provider string, status int, err error) *Error {
	kind := KindUnavailable
	if status == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Provider: provider, Status: status, Err: err}
}
