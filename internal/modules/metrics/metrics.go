// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vector_hub_request_count_total",
			Help: "Total number of requests processed",
		},
		[]string{"path", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vector_hub_upstream_duration_seconds",
			Help:    "Time taken by upstream vectorizer calls in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120, 180},
		},
		[]string{"path"},
	)

	CreditsCharged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vector_hub_credits_charged_total",
			Help: "Total credits charged by the upstream vectorizer",
		},
	)

	CreditsCalculated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vector_hub_credits_calculated_total",
			Help: "Total credits calculated by the upstream vectorizer",
		},
	)
)
