// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"errors"
	"net/http"

	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/middleware"
)

// GetRanking handles GET /api/v1/ranking.
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	opts, err := parseRankingRequest(r.URL.Query())
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			respondError(w, r, http.StatusBadRequest, CodeValidationError, reqErr.Error())
			return
		}
		respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	data, err := h.registry.Ranking().GetRanking(r.Context(), opts)
	if err != nil {
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("ranking query failed")
		respondError(w, r, http.StatusInternalServerError, CodeDatabaseError, "failed to compute ranking")
		return
	}

	respondJSON(w, r, http.StatusOK, toRankingResponse(data))
}
