// Package metrics defines and registers all custom Prometheus metrics for
// the flight request API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flightops"

// RequestsSubmittedTotal counts successfully created flight requests.
var RequestsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_submitted_total",
		Help:      "Total number of flight requests submitted.",
	},
)

// DecisionsTotal counts applied decisions.
// Label:
//   - outcome: "accepted" or "declined"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of decisions applied, by outcome.",
	},
	[]string{"outcome"},
)

// DecisionConflictsTotal counts decide calls that lost the race on an
// already-decided request.
var DecisionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decision_conflicts_total",
		Help:      "Total number of decisions rejected because the request was already decided.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events persisted to the trail.
// Label:
//   - type: "submitted", "accepted" or "declined"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events written, by event type.",
	},
	[]string{"type"},
)
