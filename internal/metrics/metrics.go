// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriplan_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutriplan_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"meal_mode", "result"}, // result: "success", "invalid", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriplan_recommendation_duration_seconds",
			Help:    "End-to-end duration of a recommendation including persistence",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecordPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriplan_recommendation_persist_failures_total",
			Help: "Recommendation records that could not be written to the store",
		},
	)

	// Model Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_model_predictions_total",
			Help: "Total number of model predictions",
		},
		[]string{"backend", "result"}, // result: "success", "error"
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriplan_model_prediction_duration_seconds",
			Help:    "Duration of model predictions in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"backend"},
	)

	PredictionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriplan_prediction_cache_hits_total",
			Help: "Predictions served from the cache",
		},
	)

	PredictionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriplan_prediction_cache_misses_total",
			Help: "Predictions that missed the cache",
		},
	)

	PredictionCacheErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriplan_prediction_cache_errors_total",
			Help: "Cache backend failures, treated as misses",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriplan_store_operation_duration_seconds",
			Help:    "Duration of record store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "collection", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_store_operation_errors_total",
			Help: "Record store operations that failed",
		},
		[]string{"backend", "collection", "operation"},
	)

	StoreUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nutriplan_store_up",
			Help: "Whether the last record store health ping succeeded (1) or failed (0)",
		},
		[]string{"backend"},
	)

	// Account Metrics
	AccountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_account_operations_total",
			Help: "User account operations by outcome",
		},
		[]string{"operation", "result"}, // result: "success", "invalid", "conflict", "not_found", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nutriplan_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriplan_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation outcome.
func RecordRecommendation(mealMode, result string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mealMode, result).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordPrediction records a model call.
func RecordPrediction(backend string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	PredictionsTotal.WithLabelValues(backend, result).Inc()
	PredictionDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordPredictionCache records a cache lookup. A backend error counts as a miss.
func RecordPredictionCache(hit bool, err error) {
	switch {
	case err != nil:
		PredictionCacheErrors.Inc()
		PredictionCacheMisses.Inc()
	case hit:
		PredictionCacheHits.Inc()
	default:
		PredictionCacheMisses.Inc()
	}
}

// RecordStoreOperation records a store call.
func RecordStoreOperation(backend, collection, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, collection, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, collection, operation).Inc()
	}
}

// SetStoreUp records the result of a store health ping.
func SetStoreUp(backend string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	StoreUp.WithLabelValues(backend).Set(v)
}

// RecordAccountOperation records an account operation outcome.
func RecordAccountOperation(operation, result string) {
	AccountOperations.WithLabelValues(operation, result).Inc()
}
