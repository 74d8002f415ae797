// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"net/http"

	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/middleware"
)

// GetSearch handles GET /api/v1/search.
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchRequest(r.URL.Query(), h.cfg.API.DefaultLimit, h.cfg.API.MaxLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	hits, err := h.registry.Search().SearchPosts(r.Context(), opts)
	if err != nil {
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("post search failed")
		respondError(w, r, http.StatusInternalServerError, CodeDatabaseError, "failed to search posts")
		return
	}

	respondJSON(w, r, http.StatusOK, toSearchResponse(hits))
}

// GetSearchCount handles GET /api/v1/search/count.
func (h *Handler) GetSearchCount(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchRequest(r.URL.Query(), h.cfg.API.DefaultLimit, h.cfg.API.MaxLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	count, err := h.registry.Search().CountPosts(r.Context(), opts)
	if err != nil {
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("post count failed")
		respondError(w, r, http.StatusInternalServerError, CodeDatabaseError, "failed to count posts")
		return
	}

	respondJSON(w, r, http.StatusOK, CountResponse{
		TotalResCount: count.TotalResCount,
		UniqueIDCount: count.UniqueIDCount,
	})
}
