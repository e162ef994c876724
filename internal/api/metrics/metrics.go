// Package metrics defines and registers all custom Prometheus metrics for the
// users service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Operation metrics ─────────────────────────────────────────────────────────

// OperationsTotal counts completed user operations.
// Labels:
//   - operation: "list", "create", "update" or "delete"
//   - result: "ok", "validation_error", "not_found", "invalid_payload" or "error"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of user operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// OperationDuration measures how long a user operation takes, storage round trip included.
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of user operations from validation to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SeededRecordsTotal counts starter records inserted into an empty collection.
var SeededRecordsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_records_total",
		Help:      "Total number of starter records inserted by the seed step.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// ChangeNotificationsTotal counts change notifications handed to the publisher.
// Labels:
//   - kind: "updated" or "deleted"
//   - result: "ok" or "error"
var ChangeNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "change_notifications_total",
		Help:      "Total number of change notifications published, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of change events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
