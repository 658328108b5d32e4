// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the mintel query pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueryMetrics holds all Prometheus metrics for the query pipeline.
type QueryMetrics struct {
	// Snapshot metrics
	SnapshotLoadsTotal   *prometheus.CounterVec
	SnapshotLoadSeconds  prometheus.Histogram
	SnapshotMeetings     prometheus.Gauge
	RecordsSkippedTotal  *prometheus.CounterVec
	ContentStrategyTotal *prometheus.CounterVec

	// Query metrics
	SearchesTotal  *prometheus.CounterVec
	SearchSeconds  prometheus.Histogram
	SearchResults  prometheus.Histogram
	AnalysesTotal  *prometheus.CounterVec

	// Augmentation metrics
	AugmentCallsTotal   *prometheus.CounterVec
	AugmentCallSeconds  *prometheus.HistogramVec
}

// DefaultQueryMetrics creates metrics with the default registerer.
func DefaultQueryMetrics() *QueryMetrics {
	return NewQueryMetrics(prometheus.DefaultRegisterer)
}

// NewQueryMetrics creates a new set of query pipeline metrics.
func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	factory := promauto.With(reg)

	return &QueryMetrics{
		// Snapshot metrics
		SnapshotLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_snapshot_loads_total",
				Help: "Total snapshot load attempts",
			},
			[]string{"status"},
		),
		SnapshotLoadSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mintel_snapshot_load_seconds",
				Help:    "Time spent loading and normalizing a snapshot",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		SnapshotMeetings: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mintel_snapshot_meetings",
				Help: "Meetings in the currently loaded snapshot",
			},
		),
		RecordsSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_records_skipped_total",
				Help: "Raw records skipped during normalization",
			},
			[]string{"kind"},
		),
		ContentStrategyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_content_strategy_total",
				Help: "Which extraction strategy produced document content",
			},
			[]string{"strategy"},
		),

		// Query metrics
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_searches_total",
				Help: "Total search queries by path",
			},
			[]string{"path"},
		),
		SearchSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mintel_search_seconds",
				Help:    "Search execution time",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		SearchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mintel_search_results",
				Help:    "Results returned per search",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
		),
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_analyses_total",
				Help: "Total analyses by kind and status",
			},
			[]string{"kind", "status"},
		),

		// Augmentation metrics
		AugmentCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintel_augment_calls_total",
				Help: "Augmentation service calls by capability and status",
			},
			[]string{"capability", "status"},
		),
		AugmentCallSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mintel_augment_call_seconds",
				Help:    "Augmentation service call latency",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"capability"},
		),
	}
}
