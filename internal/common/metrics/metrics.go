// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Planner metrics.
var (
	IntentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_intent_classifications_total",
			Help: "Messages classified, by resulting intent",
		},
		[]string{"intent"},
	)

	EstimateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_estimate_cache_total",
			Help: "Estimate cache lookups by estimate kind and result (local_hit, redis_hit, miss, error)",
		},
		[]string{"kind", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_http_requests_total",
			Help: "HTTP API requests by route and status code",
		},
		[]string{"route", "status"},
	)
)
