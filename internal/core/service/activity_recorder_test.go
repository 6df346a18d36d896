package service

import (
	"testing"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

func TestActivityRecorder_Defaults(t *testing.T) {
	recorder := NewActivityRecorder("mock")
	recorder.Record(domain.ActivityEntry{Action: "profile", Method: "GET", Endpoint: "/profile"})

	entries := recorder.List(0)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Timestamp.IsZero() {
		t.Fatalf("timestamp not defaulted")
	}
	if entry.Status != domain.ActivitySuccess {
		t.Fatalf("status not defaulted: %q", entry.Status)
	}
	if entry.Source != "mock" {
		t.Fatalf("source not tagged: %q", entry.Source)
	}
}

func TestActivityRecorder_ListLimitAndOrder(t *testing.T) {
	recorder := NewActivityRecorder("live")
	for _, action := range []string{"a", "b", "c"} {
		recorder.Record(domain.ActivityEntry{Action: action})
	}

	all := recorder.List(0)
	if len(all) != 3 || all[0].Action != "a" || all[2].Action != "c" {
		t.Fatalf("entries out of insertion order: %+v", all)
	}

	last := recorder.List(2)
	if len(last) != 2 || last[0].Action != "b" || last[1].Action != "c" {
		t.Fatalf("limit should return the most recent entries: %+v", last)
	}

	// The returned slice is a copy; mutating it must not affect the log.
	last[0].Action = "mutated"
	if recorder.List(0)[1].Action != "b" {
		t.Fatalf("List leaked internal storage")
	}
}

func TestActivityRecorder_Clear(t *testing.T) {
	recorder := NewActivityRecorder("live")
	recorder.Record(domain.ActivityEntry{Action: "login"})
	recorder.Clear()

	if entries := recorder.List(0); len(entries) != 0 {
		t.Fatalf("expected empty log after clear, got %d entries", len(entries))
	}
}
