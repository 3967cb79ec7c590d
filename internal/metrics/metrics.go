// Package metrics holds the Prometheus collectors of the flight log service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightlog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flightlog_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flightlog_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightlog_store_errors_total",
			Help: "Failed store operations by operation name",
		},
		[]string{"operation"},
	)

	SummariesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightlog_stats_summaries_total",
			Help: "Number of pilot summaries computed",
		},
	)

	SummaryFlights = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flightlog_stats_summary_flights",
			Help:    "Number of flights aggregated per summary",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightlog_import_rows_total",
			Help: "CSV rows processed by outcome",
		},
		[]string{"outcome"}, // "ok", "warning", "error", "stored"
	)
)

// RecordAPIRequest records one finished request. route is the mux path
// template so ids don't explode the label cardinality.
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}

func RecordSummary(flights int) {
	SummariesComputed.Inc()
	SummaryFlights.Observe(float64(flights))
}

func RecordImportRows(outcome string, n int) {
	if n <= 0 {
		return
	}
	ImportRows.WithLabelValues(outcome).Add(float64(n))
}
