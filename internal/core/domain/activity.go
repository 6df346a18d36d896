package domain

import "time"

// ActivityEntry is a single record of one upstream exchange. Entries are
// append-only and ordered by insertion; the log is purely observational.
type ActivityEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Method    string         `json:"method"`
	Endpoint  string         `json:"endpoint"`
	Payload   map[string]any `json:"payload,omitempty"`
	Response  any            `json:"response,omitempty"`
	Status    string         `json:"status"`
	Source    string         `json:"source"`
}

// Activity statuses.
const (
	ActivitySuccess = "success"
	ActivityError   = "error"
)
