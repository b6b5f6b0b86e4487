// Package metrics holds the Prometheus collectors of the analysis service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tsawler/litsense"
)

// Analysis Metrics
var (
	// AnalysesTotal tracks analysis requests by text type and outcome
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litsense_analyses_total",
			Help: "Total analyses by text type and status",
		},
		[]string{"text_type", "status"},
	)

	// AnalysisDuration tracks the wall time of a complete analysis in seconds
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litsense_analysis_duration_seconds",
			Help:    "Complete analysis duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// StageDuration tracks the duration of each pipeline stage in seconds
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litsense_stage_duration_seconds",
			Help:    "Analysis stage duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"stage"},
	)
)

// Storage Metrics
var (
	// CacheOperationsTotal tracks result cache lookups by result (hit/miss/error)
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litsense_cache_operations_total",
			Help: "Total result cache operations by result",
		},
		[]string{"result"},
	)

	// HistoryOperationsTotal tracks analysis history queries by operation and status
	HistoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litsense_history_operations_total",
			Help: "Total analysis history operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// HTTP Metrics
var (
	// HTTPRequestsTotal tracks HTTP requests by method, route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litsense_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litsense_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal tracks requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "litsense_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)
)

// StageObserver records stage durations into StageDuration. Pass it to
// litsense.WithStageObserver.
func StageObserver() func(stage litsense.Stage, took time.Duration) {
	return func(stage litsense.Stage, took time.Duration) {
		if stage == litsense.StageComplete {
			AnalysisDuration.Observe(took.Seconds())
			return
		}
		StageDuration.WithLabelValues(string(stage)).Observe(took.Seconds())
	}
}
