package model

import "errors"

var (
	// ErrRateLimited is returned when the sliding-window limiter rejects a client.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrEmptyResponse is returned when the upstream model produced no content.
	ErrEmptyResponse = errors.New("empty model response")
)

// ValidationError reports a structurally invalid request parameter.
// Kind is a stable machine-readable identifier for the failed field.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation error kinds.
const (
	InvalidMode      = "INVALID_MODE"
	InvalidStyle     = "INVALID_STYLE"
	InvalidCount     = "INVALID_COUNT"
	InvalidLocale    = "INVALID_LOCALE"
	InvalidAudience  = "INVALID_AUDIENCE"
	InvalidIntensity = "INVALID_INTENSITY"
)
