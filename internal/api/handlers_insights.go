// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"net/http"
	"time"
)

// SponsorMatches handles POST /api/v1/creators/{id}/sponsors.
func (h *Handler) SponsorMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SponsorMatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	matches, err := h.recommend.SponsorMatches(ctx, id, req.toActors(), req.Limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"creator_id": id,
		"matches":    matches,
	}, start)
}

// Collaboration handles GET /api/v1/creators/{id}/collaborations/{other}.
func (h *Handler) Collaboration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	other, ok := pathID(w, r, "other")
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.recommend.Collaboration(ctx, id, other)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, report, start)
}

// Influence handles GET /api/v1/creators/{id}/influence.
func (h *Handler) Influence(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.recommend.Influence(ctx, id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, report, start)
}

// Affinity handles GET /api/v1/fans/{id}/affinity/{creator}.
func (h *Handler) Affinity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	creator, ok := pathID(w, r, "creator")
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.recommend.Affinity(ctx, id, creator)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, report, start)
}
