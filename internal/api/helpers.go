// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/middleware"
)

// Error codes returned in the error envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeDatabaseError   = "DATABASE_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("failed to encode response body")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
