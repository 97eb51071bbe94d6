// Package metrics defines and registers all custom Prometheus metrics for the
// storefront client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; `storefront serve` exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Backend client metrics ────────────────────────────────────────────────────

// ClientRequestsTotal counts backend requests made by the HTTP client.
// Labels:
//   - method: HTTP method
//   - route: request path with ids collapsed to ":id" (e.g. "/cart/:id")
//   - outcome: "ok", "http_error" or "transport_error"
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of backend API requests, by method, route and outcome.",
	},
	[]string{"method", "route", "outcome"},
)

// ClientRequestDuration measures backend round trips, including body decoding.
var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── User feedback ─────────────────────────────────────────────────────────────

// NotificationsTotal counts toasts and alerts shown to the user.
// Label:
//   - level: "info", "success" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of user notifications, by level.",
	},
	[]string{"level"},
)

// ── Cart and orders ───────────────────────────────────────────────────────────

// CartMutationsTotal counts cart and order mutations sent to the backend.
// Labels:
//   - op: "add", "update", "remove" or "checkout"
//   - outcome: "ok" or "error"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations and checkouts, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// ── Session persistence ───────────────────────────────────────────────────────

// SessionStoreOpsTotal counts persisted-session operations.
// Labels:
//   - backend: "file", "redis" or "mongo"
//   - op: "read", "write" or "erase"
//   - outcome: "ok" or "error"
var SessionStoreOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_store_ops_total",
		Help:      "Total number of session store operations, by backend, operation and outcome.",
	},
	[]string{"backend", "op", "outcome"},
)

// ── Local web UI ──────────────────────────────────────────────────────────────

// UIEventsWaiting tracks UI events queued behind the single event lock.
var UIEventsWaiting = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ui_events_waiting",
		Help:      "Current number of UI events waiting for the event lock.",
	},
)

// Outcome maps an error to the "ok"/"error" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
