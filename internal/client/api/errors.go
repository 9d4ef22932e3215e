package api

import "errors"

var (
	// ErrSuperseded marks a request that was canceled because a newer call
	// of the same kind replaced it. Callers treat it as a silent no-op,
	// never as a failure.
	ErrSuperseded = errors.New("request superseded")

	// ErrUnauthorized matches 401/403 server responses via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// Messages produced by error normalization for failures that never reached
// the server, matching what the UI is expected to display.
const (
	msgNetworkError   = "Network error - please check your connection"
	msgRequestTimeout = "Request timeout. Please try again."
	msgUnexpected     = "An unexpected error occurred"
)

// Error is a normalized backend failure. Status is the HTTP status code, or
// 0 when the request never reached the server. Message is always non-empty
// and human-readable.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports 401/403 responses as ErrUnauthorized.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == 401 || e.Status == 403)
}
