package handler

import (
	"errors"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

// isUpstreamError reports whether the upstream answered at all. Everything
// else (transport failures, decode errors) is treated as unexpected and
// surfaces as a 500.
func isUpstreamError(err error) bool {
	var ae *domain.AuthError
	var re *domain.RequestError
	return errors.As(err, &ae) || errors.As(err, &re)
}

// withUpstreamBody suffixes the detail message with the upstream response
// body so callers see the actual rejection reason.
func withUpstreamBody(msg string, err error) string {
	var re *domain.RequestError
	if errors.As(err, &re) && re.Body != "" {
		return msg + ": " + re.Body
	}
	var ae *domain.AuthError
	if errors.As(err, &ae) && ae.Body != "" {
		return msg + ": " + ae.Body
	}
	return msg
}
