// Package metrics defines all custom Prometheus metrics for the status
// board API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "statusboard"

// ── Roster metrics ────────────────────────────────────────────────────────────

// StatusUpdatesTotal counts availability changes that were persisted.
// Label:
//   - status: the new availability status (e.g. "Busy", "With Patient")
var StatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_updates_total",
		Help:      "Total number of availability status updates persisted.",
	},
	[]string{"status"},
)

// StatusUpdateErrorsTotal counts availability changes that failed.
// Label:
//   - reason: short failure description (e.g. "invalid_status", "not_found", "store_error")
var StatusUpdateErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_update_errors_total",
		Help:      "Total number of availability status updates that failed.",
	},
	[]string{"reason"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// FeedSubscribers tracks the number of currently connected live viewers.
var FeedSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscribers",
		Help:      "Number of currently connected roster feed subscribers.",
	},
)

// FeedSnapshotsTotal counts full roster snapshots delivered to viewers.
var FeedSnapshotsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_snapshots_total",
		Help:      "Total number of full roster snapshots sent over the feed.",
	},
)

// ── Seeding metrics ───────────────────────────────────────────────────────────

// SeedRunsTotal counts seeding attempts.
// Label:
//   - result: "seeded", "skipped", or "error"
var SeedRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_runs_total",
		Help:      "Total number of starter roster seeding attempts, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts failed authentication actions.
// Label:
//   - action: "register", "login", or "logout"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication actions.",
	},
	[]string{"action"},
)
