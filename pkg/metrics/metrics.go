// Package metrics registers the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	PagesAnalyzed       prometheus.Counter
	JudgeCallsTotal     *prometheus.CounterVec
)

// Init registers all collectors. Call once at startup before serving.
func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of analysis runs by final status.",
		},
		[]string{"status"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Duration of full analysis runs.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
	)

	PagesAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_analyzed_total",
			Help: "Total number of pages extracted and scored.",
		},
	)

	JudgeCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judge_calls_total",
			Help: "Total number of LLM judge calls by outcome.",
		},
		[]string{"outcome"}, // scored, absent
	)
}
