// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package middleware

import (
	"cmp"
	"net/http"
	"slices"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/mantra/internal/logging"
)

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats contains aggregated statistics for an endpoint over the
// sliding window.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MinDuration  int64   `json:"min_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor holds the most recent requests in a fixed ring and
// warns about slow ones. It backs GET /api/v1/health/performance.
type PerformanceMonitor struct {
	mu   sync.RWMutex
	ring []RequestMetrics
	next int // slot written by the next RecordRequest
	full bool
	slow time.Duration
}

// NewPerformanceMonitor remembers capacity requests (1000 when capacity is
// not positive). A zero slow disables the slow-request warning.
func NewPerformanceMonitor(capacity int, slow time.Duration) *PerformanceMonitor {
	if capacity <= 0 {
		capacity = 1000
	}
	return &PerformanceMonitor{ring: make([]RequestMetrics, capacity), slow: slow}
}

// RecordRequest stores m, overwriting the oldest entry once the ring is full.
func (pm *PerformanceMonitor) RecordRequest(m *RequestMetrics) {
	pm.mu.Lock()
	pm.ring[pm.next] = *m
	pm.next++
	if pm.next == len(pm.ring) {
		pm.next, pm.full = 0, true
	}
	pm.mu.Unlock()
}

// snapshot copies the window oldest first. Callers hold mu.
func (pm *PerformanceMonitor) snapshot() []RequestMetrics {
	if !pm.full {
		return slices.Clone(pm.ring[:pm.next])
	}
	return append(slices.Clone(pm.ring[pm.next:]), pm.ring[:pm.next]...)
}

// GetStats aggregates the window per "METHOD route", busiest first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	window := pm.snapshot()
	pm.mu.RUnlock()

	type acc struct {
		durations []int64
		sum       int64
		errors    int64
	}
	byEndpoint := make(map[string]*acc)
	for _, m := range window {
		key := m.Method + " " + m.Route
		a := byEndpoint[key]
		if a == nil {
			a = &acc{}
			byEndpoint[key] = a
		}
		a.durations = append(a.durations, m.DurationMS)
		a.sum += m.DurationMS
		if m.StatusCode >= http.StatusInternalServerError {
			a.errors++
		}
	}

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, a := range byEndpoint {
		slices.Sort(a.durations)
		n := len(a.durations)
		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(n),
			ErrorCount:   a.errors,
			AvgDuration:  float64(a.sum) / float64(n),
			P50Duration:  percentile(a.durations, 0.50),
			P95Duration:  percentile(a.durations, 0.95),
			P99Duration:  percentile(a.durations, 0.99),
			MinDuration:  a.durations[0],
			MaxDuration:  a.durations[n-1],
		})
	}

	slices.SortFunc(stats, func(x, y EndpointStats) int {
		if c := cmp.Compare(y.RequestCount, x.RequestCount); c != 0 {
			return c
		}
		return cmp.Compare(x.Endpoint, y.Endpoint)
	})
	return stats
}

// GetRecentMetrics returns up to n of the newest requests, oldest first.
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	window := pm.snapshot()
	pm.mu.RUnlock()

	n = max(0, min(n, len(window)))
	return window[len(window)-n:]
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := RoutePattern(r)
		pm.RecordRequest(&RequestMetrics{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: statusOf(ww),
			Timestamp:  start,
		})

		if pm.slow > 0 && elapsed > pm.slow {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Dur("threshold", pm.slow).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value at p from sorted.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
