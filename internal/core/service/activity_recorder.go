package service

import (
	"sync"
	"time"

	"github.com/tripdesk/travio-gateway/internal/api/metrics"
	"github.com/tripdesk/travio-gateway/internal/core/domain"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// ActivityRecorder keeps an in-memory append-only log of upstream exchanges.
// Appends are guarded by a mutex because inbound requests run concurrently;
// ordering is insertion order and growth is unbounded within the process
// lifetime (cleared only on explicit request).
type ActivityRecorder struct {
	source string

	mu      sync.Mutex
	entries []domain.ActivityEntry
}

var _ ports.ActivityRecorder = (*ActivityRecorder)(nil)

// NewActivityRecorder creates a recorder tagging entries with the given
// source ("live" or "mock").
func NewActivityRecorder(source string) *ActivityRecorder {
	return &ActivityRecorder{source: source}
}

func (r *ActivityRecorder) Record(entry domain.ActivityEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = domain.ActivitySuccess
	}
	if entry.Source == "" {
		entry.Source = r.source
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()

	metrics.ActivityEntriesTotal.WithLabelValues(entry.Action).Inc()
}

// List returns a copy of the recorded entries in insertion order. When
// limit > 0 only the most recent limit entries are returned.
func (r *ActivityRecorder) List(limit int) []domain.ActivityEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.entries
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}
	out := make([]domain.ActivityEntry, len(entries))
	copy(out, entries)
	return out
}

func (r *ActivityRecorder) Clear() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}
