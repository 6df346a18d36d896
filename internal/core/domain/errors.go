package domain

import "fmt"

// AuthError reports that the upstream rejected an authentication or login
// attempt, or returned a response without a token. It is deliberately
// distinct from RequestError so callers can render "auth failed" and
// "request failed" differently.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("travio authentication failed with status %d", e.StatusCode)
}

// RequestError carries any non-2xx upstream response. The raw body is kept
// for diagnostics and is surfaced to callers alongside the status code.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("travio request failed with status %d", e.StatusCode)
}
