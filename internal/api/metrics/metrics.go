// Package metrics defines and registers all custom Prometheus metrics for the
// route service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "routing"

// ── Ingestion metrics ─────────────────────────────────────────────────────────

// IngestRecordsTotal counts raw records produced by each adapter.
// Label:
//   - source: adapter kind (e.g. "delimited", "kml", "gpx", "link")
var IngestRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_records_total",
		Help:      "Total number of raw records produced by ingestion adapters.",
	},
	[]string{"source"},
)

// IngestAdapterFailuresTotal counts sources that failed to parse and were skipped.
var IngestAdapterFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_adapter_failures_total",
		Help:      "Total number of sources that could not be parsed and yielded no records.",
	},
	[]string{"source"},
)

// IngestPointsDroppedTotal counts rows removed by coordinate cleaning.
var IngestPointsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_points_dropped_total",
		Help:      "Total number of rows dropped for non-numeric or out-of-range coordinates.",
	},
)

// ── Optimization metrics ──────────────────────────────────────────────────────

// OptimizationsTotal counts optimization requests.
// Labels:
//   - mode: "online" or "offline"
//   - result: "ok", "fallback" or "error"
var OptimizationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optimizations_total",
		Help:      "Total number of route optimizations, by mode and result.",
	},
	[]string{"mode", "result"},
)

// OptimizationDuration measures end-to-end optimization time.
var OptimizationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "optimization_duration_seconds",
		Help:      "Duration of route optimization, by mode.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"mode"},
)

// SolverImprovementsTotal counts accepted local-search moves in the offline solver.
var SolverImprovementsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solver_improvements_total",
		Help:      "Total number of improving moves applied by the offline solver.",
	},
)

// ── External collaborators ────────────────────────────────────────────────────

// ExternalRequestsTotal counts outbound calls.
// Labels:
//   - endpoint: "optimization", "directions", "geocode", "autocomplete", "mymaps"
//   - result: "ok" or "error"
var ExternalRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_requests_total",
		Help:      "Total number of requests to external services, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)

// GeocodeCacheTotal counts geocode cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var GeocodeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_total",
		Help:      "Total number of geocode cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// Result converts an error into the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
