// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analyses by outcome:
	// "ok", "empty", "error".
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footprint_analyses_total",
		Help: "Completed page analyses by outcome.",
	}, []string{"status"})

	// AnalysisDuration observes end-to-end analysis latency.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "footprint_analysis_duration_seconds",
		Help:    "End-to-end duration of a page analysis.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	})

	// CapturedRequests observes how many network requests a page produced.
	CapturedRequests = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "footprint_captured_requests",
		Help:    "Network requests observed per page load.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	// LookupFailures counts per-item provider lookup failures by provider:
	// "dns", "geo", "green", "entity".
	LookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footprint_lookup_failures_total",
		Help: "Per-item external lookup failures by provider.",
	}, []string{"provider"})
)
