// Package metrics defines and registers all custom Prometheus metrics for
// the Travio gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the echoprometheus middleware exposes them on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travio_gateway"

// ── Upstream forwarding metrics ───────────────────────────────────────────────

// UpstreamRequestsTotal counts outbound calls to the Travio API.
// Labels:
//   - method: HTTP method of the outbound call
//   - status: status class ("2xx", "4xx", "5xx") or "error" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of outbound Travio API calls, by method and status class.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures how long a single outbound call takes,
// including slow search operations (read timeout is 30s).
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of outbound Travio API calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"method"},
)

// TokenRefreshesTotal counts authentication round-trips against the
// upstream identity endpoint.
// Label:
//   - result: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of upstream authentication calls, by result.",
	},
	[]string{"result"},
)

// ActivityEntriesTotal counts entries appended to the activity log.
// Label:
//   - action: the recorded action name (e.g. "crm.search", "booking.picks")
var ActivityEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_entries_total",
		Help:      "Total number of activity log entries recorded, by action.",
	},
	[]string{"action"},
)

// StatusClass collapses an HTTP status code into its class label ("2xx",
// "4xx", ...) to keep metric cardinality bounded.
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
