package service

import (
	"errors"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// redactedToken replaces token values in recorded auth/login responses so
// credentials never reach the activity log. Redaction is applied only to
// the known token fields of those actions, not to arbitrary payloads.
const redactedToken = "***redacted***"

func recordSuccess(rec ports.ActivityRecorder, action, method, endpoint string, payload map[string]any, response any) {
	rec.Record(domain.ActivityEntry{
		Action:   action,
		Method:   method,
		Endpoint: endpoint,
		Payload:  payload,
		Response: response,
		Status:   domain.ActivitySuccess,
	})
}

func recordFailure(rec ports.ActivityRecorder, action, method, endpoint string, payload map[string]any, err error) {
	rec.Record(domain.ActivityEntry{
		Action:   action,
		Method:   method,
		Endpoint: endpoint,
		Payload:  payload,
		Response: errorPayload(err),
		Status:   domain.ActivityError,
	})
}

// errorPayload mirrors the upstream status/body for structured upstream
// errors and the bare message otherwise.
func errorPayload(err error) map[string]any {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return map[string]any{"status_code": ae.StatusCode, "payload": ae.Body}
	}
	var re *domain.RequestError
	if errors.As(err, &re) {
		return map[string]any{"status_code": re.StatusCode, "payload": re.Body}
	}
	return map[string]any{"error": err.Error()}
}
