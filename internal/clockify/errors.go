package clockify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by Client matches exactly one of these
// through errors.Is.
var (
	ErrAuth              = errors.New("clockify: invalid or missing API key")
	ErrNotFound          = errors.New("clockify: workspace or resource not found")
	ErrTransient         = errors.New("clockify: service unavailable")
	ErrMalformedResponse = errors.New("clockify: malformed response")
	ErrRequestRejected   = errors.New("clockify: request rejected")
)

// APIError describes a failed call.
type APIError struct {
	Op         string // "list users", "detailed report"
	StatusCode int    // 0 when no response was received
	Body       string
	Kind       error
	Err        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// kindForStatus maps a non-2xx status code to an error kind.
func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrAuth
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return ErrTransient
	default:
		return ErrRequestRejected
	}
}

// truncateBody keeps error messages readable when the service returns a
// full HTML page.
func truncateBody(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "…"
	}
	return string(b)
}
