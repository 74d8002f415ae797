// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// GetHealth handles GET /api/v1/health. Same contract as readiness; the
// versioned path exists for clients that only see the API prefix.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.GetReadiness(w, r)
}

// GetLiveness handles GET /health/live. It answers as long as the
// process can serve requests at all.
func (h *Handler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

// GetReadiness handles GET /health/ready. Ready means the store answers
// a ping within a short deadline.
func (h *Handler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.registry.Pinger().Ping(ctx); err != nil {
		respondJSON(w, r, http.StatusServiceUnavailable, healthResponse{
			Status:        "unavailable",
			UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		})
		return
	}
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}
