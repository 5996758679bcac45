// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/mantra/internal/engagement"
	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/recommend"
	"github.com/tomtom215/mantra/internal/textsignal"
)

// PredictEngagement handles POST /api/v1/engagement/predict.
func (h *Handler) PredictEngagement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EngagementRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	now := h.now()
	draft := engagement.Draft{Text: req.Text, CreatedAt: now, HasMedia: req.HasMedia}
	if req.CreatedAt != nil {
		draft.CreatedAt = *req.CreatedAt
	}

	var (
		stats engagement.AuthorStats
		times = engagement.BestPostingTimes(nil)
	)
	switch {
	case req.AuthorID > 0:
		ctx, cancel := h.withTimeout(r.Context())
		defer cancel()

		author, err := h.store.Actor(ctx, req.AuthorID)
		if err != nil {
			respondDomainError(w, r, fmt.Errorf("%w: author %d", err, req.AuthorID))
			return
		}
		if author.Role != models.RoleCreator && author.Role != models.RoleFan {
			respondDomainError(w, r, fmt.Errorf("%w: actor %d does not author posts", recommend.ErrInvalidRequest, req.AuthorID))
			return
		}
		posts, err := h.store.Content(ctx, models.KindPost)
		if err != nil {
			respondDomainError(w, r, fmt.Errorf("load posts: %w", err))
			return
		}
		authored := make([]models.ContentItem, 0)
		for i := range posts {
			if posts[i].AuthorID == author.ID {
				authored = append(authored, posts[i])
			}
		}
		stats = engagement.StatsFromPosts(author, authored, now)
		times = engagement.BestPostingTimes(authored)
	case req.Author != nil:
		stats = *req.Author
	}

	respondSuccess(w, http.StatusOK, EngagementResponse{
		Prediction:   engagement.Predict(draft, stats),
		Hashtags:     engagement.HashtagEffectiveness(textsignal.Hashtags(req.Text)),
		PostingTimes: times,
	}, start)
}
