// Package llm talks to a chat-completions provider and turns its output
// into typed items. Errors are classified so the transport retries only
// what is worth retrying.
package llm

import (
	"errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors should be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// TransportError wraps an upstream failure with categorization metadata.
type TransportError struct {
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Body       string // Response body for debugging
	Underlying error  // The original error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// IsRetryable reports whether err is a recoverable transport failure.
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Category == Recoverable
	}
	return false
}

// newHTTPError classifies an upstream HTTP status:
// - 4xx client errors (except 408/429) are irrecoverable
// - 5xx server errors are recoverable
// - anything unexpected is retried conservatively
func newHTTPError(statusCode int, body string) *TransportError {
	category := Recoverable
	if statusCode >= 400 && statusCode < 500 {
		switch statusCode {
		case 408, 429:
			// Request Timeout and Too Many Requests clear up on their own.
		default:
			category = Irrecoverable
		}
	}
	return &TransportError{
		Category:   category,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("chat completion failed: HTTP %d", statusCode),
	}
}

// newNetworkError wraps a network-level failure. Timeouts, connection resets
// and DNS errors are all transient, so these are always recoverable.
func newNetworkError(err error) *TransportError {
	return &TransportError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("chat completion network error: %w", err),
	}
}

// ParseError is returned when every parsing strategy failed on the model
// output. Distinct from TransportError so callers can tell "model produced
// unusable output" apart from "call failed".
type ParseError struct {
	Reason  string
	Snippet string // leading slice of the raw text, for logs
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response parse failed: %s", e.Reason)
}

// ConfigError reports a missing or unusable provider configuration, such as
// an absent API key. Operator-caused, never retried.
type ConfigError struct {
	Provider string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %s misconfigured: %s", e.Provider, e.Reason)
}
