// Package metrics provides Prometheus instrumentation for report queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics tracks query latency, row counts and report renders.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	QueryDuration   *prometheus.HistogramVec
	QueryRows       *prometheus.HistogramVec
	QueryErrors     *prometheus.CounterVec
	ReportsRendered *prometheus.CounterVec
}

// New creates the dashboard metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on /-/metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wine_dashboard_query_duration_seconds",
			Help:    "Duration of data store queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"query", "outcome"}),
		QueryRows: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wine_dashboard_query_rows",
			Help:    "Rows returned by data store queries",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"query"}),
		QueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wine_dashboard_query_errors_total",
			Help: "Total number of failed data store queries",
		}, []string{"query"}),
		ReportsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wine_dashboard_reports_rendered_total",
			Help: "Total number of rendered reports by mode and kind",
		}, []string{"report", "kind"}),
	}
}

// ObserveQuery records the outcome of a query started at start.
func (m *Metrics) ObserveQuery(query string, start time.Time, rows int, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
		m.QueryErrors.WithLabelValues(query).Inc()
	} else {
		m.QueryRows.WithLabelValues(query).Observe(float64(rows))
	}

	m.QueryDuration.WithLabelValues(query, outcome).Observe(time.Since(start).Seconds())
}

// IncReportRendered records a successful report render.
func (m *Metrics) IncReportRendered(report, kind string) {
	if m == nil {
		return
	}

	m.ReportsRendered.WithLabelValues(report, kind).Inc()
}
