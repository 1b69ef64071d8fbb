// Package metrics defines and registers all custom Prometheus metrics
// for the club directory client. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubdir"

// RemoteRequestsTotal counts calls to the hosted backend.
// Labels:
//   - operation: the logical operation (e.g. "login", "events")
//   - outcome: "ok" or "error"
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of requests issued to the hosted backend.",
	},
	[]string{"operation", "outcome"},
)

// RemoteRequestDuration measures how long a single backend request
// takes end-to-end, including JSON decoding.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of requests to the hosted backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionTransitionsTotal counts session status transitions.
// Label:
//   - status: the status entered ("authenticated", "unauthenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session status transitions, by status entered.",
	},
	[]string{"status"},
)
