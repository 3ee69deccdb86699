package catalog

import (
	"fmt"
	"net/http"
)

// Error represents an error response from the catalog API.
//
// The Error type carries the HTTP status and the message from the
// error body, so callers can distinguish a missing entity from a
// rate limit or a bad token.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // Error message from the API
	RetryAfter int    // Seconds to wait, set when the API rate-limits (429)
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("catalog: %d: %s", e.StatusCode, e.Message)
}

// Is checks if the target error is a catalog error with the same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsNotFound reports whether the error is a missing-entity response.
// Callers should log and skip the entity rather than abort.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether the error is a rate-limit response.
func (e *Error) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsAuthFailure reports whether the error is an authorization failure.
// These are fatal: the user must re-authenticate.
func (e *Error) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Temporary returns true if the error is temporary and the request
// should be retried.
func (e *Error) Temporary() bool {
	return e.IsRateLimited() || e.StatusCode >= 500
}

// Predefined errors for common cases.
var (
	// ErrNoAccessToken is returned when an operation requires
	// authentication but no access token has been set.
	ErrNoAccessToken = fmt.Errorf("catalog: access token required")

	// ErrNoActiveDevice is returned by playback operations when no
	// playback device is available.
	ErrNoActiveDevice = fmt.Errorf("catalog: no active playback device")
)
