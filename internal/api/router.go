// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nanashi-dev/ressearch/internal/middleware"
)

// NewRouter assembles the full HTTP route tree with its middleware
// chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Use(httprate.LimitByIP(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ranking", h.GetRanking)
		r.Get("/search", h.GetSearch)
		r.Get("/search/count", h.GetSearchCount)
		r.Get("/health", h.GetHealth)
	})

	r.Get("/health/live", h.GetLiveness)
	r.Get("/health/ready", h.GetReadiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
