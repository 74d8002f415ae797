// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package registry wires repository implementations to their consumers.
// Handlers and the crawler depend on the interfaces here, never on the
// database package directly, so tests can substitute fakes.
package registry

import (
	"context"

	"github.com/nanashi-dev/ressearch/internal/database"
	"github.com/nanashi-dev/ressearch/internal/models"
)

// RankingRepository serves identity rankings.
type RankingRepository interface {
	GetRanking(ctx context.Context, opts models.RankingOptions) (*models.RankingData, error)
}

// SearchRepository serves per-post search and counting.
type SearchRepository interface {
	SearchPosts(ctx context.Context, opts models.SearchOptions) ([]models.PostHit, error)
	CountPosts(ctx context.Context, opts models.SearchOptions) (*models.SearchCount, error)
}

// PostStore is the write side used by the crawler.
type PostStore interface {
	InsertPosts(ctx context.Context, posts []models.Post) (int64, error)
	LatestPostNo(ctx context.Context) (int32, error)
	UpsertOekaki(ctx context.Context, o models.Oekaki) error
}

// Pinger reports store liveness for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Registry holds the concrete repositories behind the interfaces above.
type Registry struct {
	ranking RankingRepository
	search  SearchRepository
	posts   PostStore
	pinger  Pinger
}

// New builds a Registry backed by the given database.
func New(db *database.DB) *Registry {
	return &Registry{
		ranking: db,
		search:  db,
		posts:   db,
		pinger:  db,
	}
}

// NewWithRepositories builds a Registry from explicit implementations.
// Intended for tests.
func NewWithRepositories(ranking RankingRepository, search SearchRepository, posts PostStore, pinger Pinger) *Registry {
	return &Registry{
		ranking: ranking,
		search:  search,
		posts:   posts,
		pinger:  pinger,
	}
}

func (r *Registry) Ranking() RankingRepository { return r.ranking }
func (r *Registry) Search() SearchRepository   { return r.search }
func (r *Registry) Posts() PostStore           { return r.posts }
func (r *Registry) Pinger() Pinger             { return r.pinger }
