// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Moderation Metrics
	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_moderation_decisions_total",
			Help: "Total number of moderation decisions",
		},
		[]string{"severity", "flagged"},
	)

	ModerationDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mantra_moderation_degraded_total",
			Help: "Total number of moderation requests answered with the neutral fallback",
		},
	)

	ModerationClauses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_moderation_clauses_total",
			Help: "Total number of fired flag clauses",
		},
		[]string{"clause"},
	)

	ModerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mantra_moderation_duration_seconds",
			Help:    "Moderation analysis duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_recommendation_requests_total",
			Help: "Total number of ranking requests by type and outcome",
		},
		[]string{"type", "outcome"}, // outcome: scored, fallback, cached, error, not_applicable
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mantra_recommendation_duration_seconds",
			Help:    "Ranking duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type"},
	)

	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_recommendation_fallbacks_total",
			Help: "Total number of rankings served from the popularity fallback",
		},
		[]string{"type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"namespace"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"namespace"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"backend", "operation"},
	)

	// Flag Event Metrics
	FlagEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_flag_events_total",
			Help: "Total number of content flag events by outcome",
		},
		[]string{"outcome"}, // outcome: published, throttled, failed
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mantra_db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_db_query_errors_total",
			Help: "Total number of store query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mantra_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mantra_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mantra_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mantra_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mantra_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordModeration records one moderation decision.
func RecordModeration(severity string, flagged, degraded bool, duration time.Duration) {
	ModerationDecisions.WithLabelValues(severity, strconv.FormatBool(flagged)).Inc()
	ModerationDuration.Observe(duration.Seconds())
	if degraded {
		ModerationDegraded.Inc()
	}
}

// RecordRecommendation records one ranking request.
func RecordRecommendation(recType, outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(recType, outcome).Inc()
	RecommendationDuration.WithLabelValues(recType).Observe(duration.Seconds())
	if outcome == "fallback" || outcome == "error" {
		RecommendationFallbacks.WithLabelValues(recType).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss for a key namespace.
func RecordCacheLookup(namespace string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(namespace).Inc()
	} else {
		CacheMisses.WithLabelValues(namespace).Inc()
	}
}

// RecordCacheError records a failed backend operation.
func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}

// RecordFlagEvent records the outcome of a flag notification.
func RecordFlagEvent(outcome string) {
	FlagEvents.WithLabelValues(outcome).Inc()
}

// RecordDBQuery records a store query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCircuitBreakerTransition records a state change. States use the
// gobreaker names: closed, half-open, open.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
