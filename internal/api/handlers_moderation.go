// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/moderation"
)

// logPreviewRunes bounds user text attached to log lines.
const logPreviewRunes = 60

// Moderate handles POST /api/v1/moderation. It always answers with a
// decision; flagged content is additionally published for review.
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ModerationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res := h.moderation.Moderate(ctx, req.Text)
	resp := ModerationResponse{ModerationResult: res}

	if res.Decision.ShouldFlag && h.notifier != nil {
		err := h.notifier.NotifyFlagged(ctx, events.FlagInput{
			PostID:     req.PostID,
			AuthorID:   req.AuthorID,
			AuthorName: req.AuthorName,
			Text:       req.Text,
			Decision:   res.Decision,
		})
		switch {
		case err == nil:
			resp.Notified = true
		case errors.Is(err, events.ErrThrottled):
			logging.Ctx(ctx).Debug().Int64("author_id", req.AuthorID).Msg("Flag notification throttled")
		default:
			// Publishing is best effort; the decision is still returned.
			logging.Ctx(ctx).Warn().Err(err).Int64("post_id", req.PostID).Msg("Failed to publish flag event")
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      res.Cached,
			Fallback:    res.Decision.Degraded,
		},
	})
}

// AnalyzeText handles POST /api/v1/moderation/analyze and returns the
// signal bundle without a decision. A failed analysis answers with the
// neutral signal and Metadata.Fallback set.
func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ModerationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	sig, err := h.moderation.Analyze(ctx, req.Text)
	fallback := err != nil
	if fallback {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("preview", logging.Preview(req.Text, logPreviewRunes)).
			Msg("Text analysis failed, returning neutral signal")
		sig = moderation.NeutralSignal()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   sig,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Fallback:    fallback,
		},
	})
}
