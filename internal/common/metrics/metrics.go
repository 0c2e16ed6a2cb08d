// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IdentifyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identify_requests_total",
			Help: "Total number of identification requests by outcome",
		},
		[]string{"outcome"},
	)

	IdentifyErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identify_errors_total",
			Help: "Total number of failed identification requests",
		},
		[]string{"error_code", "category"},
	)

	IdentifyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identify_duration_seconds",
			Help:    "Duration of identification requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"prompt_mode"},
	)

	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classifier_call_duration_seconds",
			Help:    "Duration of external classifier calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"result"},
	)

	DirectoryLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "species_directory_loads_total",
			Help: "Total number of species directory loads by source and result",
		},
		[]string{"source", "result"},
	)

	DirectorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "species_directory_size",
			Help: "Number of species in the most recently loaded directory",
		},
	)

	SuggestionsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identify_suggestions_total",
			Help: "Total number of suggestions returned by match source",
		},
		[]string{"source", "matched"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identify_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
