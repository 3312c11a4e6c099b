// Package metrics defines and registers all custom Prometheus metrics for the
// CRM API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthDenialsTotal counts rejected requests.
// Label:
//   - reason: "role" (allow-list miss) or "ownership" (resource-level denial)
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by the role or ownership policy.",
	},
	[]string{"reason"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskStatusUpdatesTotal counts applied status changes.
// Label:
//   - status: the new status value (e.g. "IN_PROGRESS")
var TaskStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_updates_total",
		Help:      "Total number of task status updates applied, by new status.",
	},
	[]string{"status"},
)

// ActivityRecordedTotal counts task activity entries persisted by the async
// pipeline.
var ActivityRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_activity_recorded_total",
		Help:      "Total number of task activity entries written.",
	},
)

// ActivityQueueDepth tracks the number of activity records waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "task_activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomersCreatedTotal counts newly created customers.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// CustomerCacheTotal counts customer cache lookups.
// Label:
//   - result: "hit" or "miss"
var CustomerCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_cache_total",
		Help:      "Total number of customer cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
