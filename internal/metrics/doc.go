// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package metrics defines the Prometheus collectors for the engine.

All collectors are registered on the default registry with promauto and
exposed at /metrics by the API router.

# Available Metrics

Moderation:
  - mantra_moderation_decisions_total{severity, flagged}
  - mantra_moderation_degraded_total
  - mantra_moderation_clauses_total{clause}
  - mantra_moderation_duration_seconds

Ranking:
  - mantra_recommendation_requests_total{type, outcome}
  - mantra_recommendation_duration_seconds{type}
  - mantra_recommendation_fallbacks_total{type}

Cache:
  - mantra_cache_hits_total{namespace}, mantra_cache_misses_total{namespace}
  - mantra_cache_errors_total{backend, operation}

Events, store, API and circuit breakers:
  - mantra_flag_events_total{outcome}
  - mantra_db_query_duration_seconds{operation, table}
  - mantra_api_requests_total{method, endpoint, status_code}
  - mantra_circuit_breaker_state{name}

# Usage

	start := time.Now()
	res := engine.Moderate(ctx, text)
	metrics.RecordModeration(string(res.Decision.Severity), res.Decision.ShouldFlag, false, time.Since(start))

Helpers never fail and are safe for concurrent use.
*/
package metrics
