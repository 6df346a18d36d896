package ports

import "github.com/tripdesk/travio-gateway/internal/core/domain"

// ActivityRecorder is the in-process append-only log of upstream exchanges.
// Recording never fails and has no correctness impact on forwarding.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
	// List returns all entries in insertion order, or only the most recent
	// limit entries when limit > 0.
	List(limit int) []domain.ActivityEntry
	Clear()
}
