package api

import (
	"errors"
	"fmt"
	"net/http"
)

const genericFailureMessage = "Something went wrong. Please try again."

// ErrMalformedResponse marks responses whose shape does not match the
// endpoint's schema. It is distinct from backend-reported failures.
var ErrMalformedResponse = errors.New("malformed response")

// Error is a failure reported by the backend: a non-2xx status or an
// envelope with success=false. Message carries the backend's own text
// verbatim when it sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// UserMessage extracts the text to show the user for err: the backend's
// message when available, otherwise a generic fallback.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFailureMessage
}
