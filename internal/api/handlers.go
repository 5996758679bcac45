// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/middleware"
	"github.com/tomtom215/mantra/internal/moderation"
	"github.com/tomtom215/mantra/internal/recommend"
	"github.com/tomtom215/mantra/internal/store"
)

const (
	defaultMaxBody        = 1 << 20
	defaultRequestTimeout = 10 * time.Second
)

// FlagNotifier publishes flagged moderation results for review.
type FlagNotifier interface {
	NotifyFlagged(ctx context.Context, in events.FlagInput) error
}

// Deps are the collaborators of a Handler. Notifier and PerfMon are
// optional.
type Deps struct {
	Store      store.Reader
	Moderation *moderation.Engine
	Recommend  *recommend.Orchestrator
	Notifier   FlagNotifier
	PerfMon    *middleware.PerformanceMonitor

	// MaxBodyBytes bounds request bodies; zero uses 1 MiB.
	MaxBodyBytes int64
	// RequestTimeout bounds each handler's work; zero uses 10s.
	RequestTimeout time.Duration
	// Now replaces time.Now, mainly for tests.
	Now func() time.Time
}

// Handler serves the HTTP API.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness, performance
//   - handlers_moderation.go: moderation and signal analysis
//   - handlers_recommend.go: recommendations, similarity, trending, search
//   - handlers_insights.go: sponsors, collaboration, influence, affinity
//   - handlers_engagement.go: engagement prediction
type Handler struct {
	store      store.Reader
	moderation *moderation.Engine
	recommend  *recommend.Orchestrator
	notifier   FlagNotifier
	perfMon    *middleware.PerformanceMonitor

	maxBody   int64
	timeout   time.Duration
	now       func() time.Time
	startTime time.Time
}

// NewHandler checks the required dependencies and applies defaults.
func NewHandler(d Deps) (*Handler, error) {
	switch {
	case d.Store == nil:
		return nil, errors.New("api: store is required")
	case d.Moderation == nil:
		return nil, errors.New("api: moderation engine is required")
	case d.Recommend == nil:
		return nil, errors.New("api: recommendation orchestrator is required")
	}

	h := &Handler{
		store:      d.Store,
		moderation: d.Moderation,
		recommend:  d.Recommend,
		notifier:   d.Notifier,
		perfMon:    d.PerfMon,
		maxBody:    d.MaxBodyBytes,
		timeout:    d.RequestTimeout,
		now:        d.Now,
		startTime:  time.Now(),
	}
	if h.maxBody <= 0 {
		h.maxBody = defaultMaxBody
	}
	if h.timeout <= 0 {
		h.timeout = defaultRequestTimeout
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h, nil
}

// withTimeout bounds the work of one request.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}
