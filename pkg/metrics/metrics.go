package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargeplan_requests_total",
			Help: "Total number of API requests per route",
		},
		[]string{"route"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chargeplan_request_duration_seconds",
			Help:    "Request duration in seconds per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargeplan_request_errors_total",
			Help: "Total number of error responses per route and status code",
		},
		[]string{"route", "code"},
	)

	ProjectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chargeplan_projections_total",
			Help: "Total number of projections computed",
		},
	)

	ProjectionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chargeplan_projection_duration_seconds",
			Help:    "Time spent computing a projection",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	UnavailableScenarioPeriodsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargeplan_unavailable_scenario_periods_total",
			Help: "Total number of monthly periods whose scenario cost could not be computed",
		},
		[]string{"scenario"},
	)

	UnknownVehicleClassesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chargeplan_unknown_vehicle_classes_total",
			Help: "Total number of vehicle groups whose class was not in the class table",
		},
	)

	CalculateCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargeplan_calculate_cache_total",
			Help: "Calculate cache lookups by result",
		},
		[]string{"result"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chargeplan_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
