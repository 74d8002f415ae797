// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package api serves the HTTP surface: ranking, post search, counts,
// health, and metrics.
package api

import (
	"time"

	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/registry"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	registry  *registry.Registry
	cfg       *config.Config
	startTime time.Time
}

// NewHandler builds a Handler over the given registry and configuration.
func NewHandler(reg *registry.Registry, cfg *config.Config) *Handler {
	return &Handler{
		registry:  reg,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
