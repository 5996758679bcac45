// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports that the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady reports 200 only when the store answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	storeErr := h.store.Ping(ctx)
	ready := storeErr == nil

	data := map[string]interface{}{
		"store_connected": ready,
		"ready_to_serve":  ready,
		"uptime":          time.Since(h.startTime).Seconds(),
	}
	if !ready {
		logging.Ctx(r.Context()).Warn().Err(storeErr).Msg("Readiness check failed")
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     data,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    &models.APIError{Code: ErrCodeNotReady, Message: "store is not reachable"},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthPerformance returns per-endpoint latency statistics over the
// monitor's sliding window.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.perfMon == nil {
		respondSuccess(w, http.StatusOK, []interface{}{}, start)
		return
	}
	respondSuccess(w, http.StatusOK, h.perfMon.GetStats(), start)
}
