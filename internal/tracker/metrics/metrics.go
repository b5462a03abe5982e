// Package metrics defines the tracker's Prometheus metrics. They register
// with the default registry on import and are served on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// EntriesCreatedTotal counts persisted time entries.
// Label:
//   - source: "manual" (add entries) or "bulk" (bulk distribution)
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of time entries created, by source.",
	},
	[]string{"source"},
)

// HoursLoggedTotal sums the hours of every created entry.
var HoursLoggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hours_logged_total",
		Help:      "Total number of hours logged across all entries.",
	},
)

// AssignmentChangesTotal counts assignment mutations.
// Label:
//   - op: "create", "update" or "delete"
var AssignmentChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_changes_total",
		Help:      "Total number of project assignment mutations, by operation.",
	},
	[]string{"op"},
)

// ReportsBuiltTotal counts report builds.
// Label:
//   - aggregate_by: "none", "project", "user" or "project_and_user"
var ReportsBuiltTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_built_total",
		Help:      "Total number of reports built, by aggregation mode.",
	},
	[]string{"aggregate_by"},
)

// ReportBuildDuration measures report selection and aggregation time.
var ReportBuildDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_duration_seconds",
		Help:      "Duration of building a report table, excluding serialization.",
		Buckets:   prometheus.DefBuckets,
	},
)

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid_credentials" or "inactive"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
