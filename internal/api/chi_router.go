// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mantra/internal/middleware"
	"github.com/tomtom215/mantra/internal/models"
)

// compressionLevel is the gzip level for JSON responses.
const compressionLevel = 5

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup builds the chi handler. Every /api/v1 group carries its own
// per-IP budget; /metrics is unlimited for the scraper.
func (router *Router) Setup() http.Handler {
	h, mw := router.handler, router.chiMiddleware
	r := chi.NewRouter()

	r.Use(middleware.RequestID, chimiddleware.RealIP, middleware.AccessLog,
		chimiddleware.Recoverer, middleware.PrometheusMetrics)
	if h.perfMon != nil {
		r.Use(h.perfMon.Middleware)
	}
	r.Use(mw.CORS(), chimiddleware.Compress(compressionLevel, "application/json"))

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(methodNotAllowed)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitCustom(RateLimitHealth), APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
		r.Get("/performance", h.HealthPerformance)
	})

	r.Route("/api/v1/moderation", func(r chi.Router) {
		r.Use(mw.RateLimitCustom(RateLimitModeration), APISecurityHeaders())
		r.Post("/", h.Moderate)
		r.Post("/analyze", h.AnalyzeText)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit(), APISecurityHeaders())

		r.Get("/actors/{id}/recommendations", h.Recommendations)
		r.Get("/actors/{id}/similar", h.SimilarActors)
		r.Get("/actors/{id}/items/{item}/score", h.ItemScore)

		r.Get("/trending/posts", h.TrendingPosts)
		r.Get("/trending/hashtags", h.TrendingHashtags)

		r.Post("/creators/{id}/sponsors", h.SponsorMatches)
		r.Get("/creators/{id}/collaborations/{other}", h.Collaboration)
		r.Get("/creators/{id}/influence", h.Influence)

		r.Get("/fans/{id}/affinity/{creator}", h.Affinity)
		r.Post("/engagement/predict", h.PredictEngagement)
		r.Get("/search", h.Search)
	})

	return r
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	respondAPIError(w, http.StatusNotFound, &models.APIError{Code: ErrCodeNotFound, Message: "route not found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondAPIError(w, http.StatusMethodNotAllowed, &models.APIError{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
}
