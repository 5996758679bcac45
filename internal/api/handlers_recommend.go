// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/recommend"
)

// typeAll requests every type that applies to the actor.
const typeAll = "all"

// RecommendationsResponse is the result of a type=all request.
type RecommendationsResponse struct {
	ActorID  int64              `json:"actor_id"`
	Sections []recommend.Result `json:"sections"`
}

// Recommendations handles GET /api/v1/actors/{id}/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	q := recommendationQuery{
		ActorID: id,
		Type:    strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))),
		Limit:   limit,
	}
	if q.Type == "" {
		q.Type = typeAll
	}
	if !validQuery(w, &q) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if q.Type == typeAll {
		results, err := h.recommend.RecommendAll(ctx, q.ActorID, q.Limit)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		meta := models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      len(results) > 0,
		}
		for i := range results {
			meta.Fallback = meta.Fallback || results[i].Fallback
			meta.Cached = meta.Cached && results[i].Cached
		}
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status:   "success",
			Data:     RecommendationsResponse{ActorID: q.ActorID, Sections: results},
			Metadata: meta,
		})
		return
	}

	t, err := recommend.ParseType(q.Type)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	res, err := h.recommend.Recommend(ctx, recommend.Request{ActorID: q.ActorID, Type: t, Limit: q.Limit})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   res,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      res.Cached,
			Fallback:    res.Fallback,
		},
	})
}

// SimilarActors handles GET /api/v1/actors/{id}/similar.
func (h *Handler) SimilarActors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	if !validQuery(w, &limitQuery{Limit: limit}) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	similar, err := h.recommend.SimilarActors(ctx, id, limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"actor_id": id,
		"similar":  similar,
	}, start)
}

// ItemScore handles GET /api/v1/actors/{id}/items/{item}/score.
func (h *Handler) ItemScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	score, err := h.recommend.PredictScore(ctx, id, item)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"actor_id": id,
		"item_id":  item,
		"score":    score,
	}, start)
}

// TrendingPosts handles GET /api/v1/trending/posts.
func (h *Handler) TrendingPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	hours, ok := intParam(w, r, "hours", 0)
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	if !validQuery(w, &trendingQuery{Hours: hours, Limit: limit}) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	posts, err := h.recommend.TrendingPosts(ctx, time.Duration(hours)*time.Hour, limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, posts, start)
}

// TrendingHashtags handles GET /api/v1/trending/hashtags.
func (h *Handler) TrendingHashtags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	days, ok := intParam(w, r, "days", 0)
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	if !validQuery(w, &trendingQuery{Days: days, Limit: limit}) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	tags, err := h.recommend.TrendingHashtags(ctx, time.Duration(days)*24*time.Hour, limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, tags, start)
}

// Search handles GET /api/v1/search. kind is "actors" (the default) or a
// content kind.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}
	q := searchQuery{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Kind:  strings.TrimSpace(r.URL.Query().Get("kind")),
		Limit: limit,
	}
	if !validQuery(w, &q) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	results, err := h.recommend.Search(ctx, q.Query, q.Kind, q.Limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"query":   q.Query,
		"results": results,
	}, start)
}
