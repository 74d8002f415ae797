// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package crawler

import (
	"context"
	"time"

	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/metrics"
	"github.com/nanashi-dev/ressearch/internal/models"
	"github.com/nanashi-dev/ressearch/internal/registry"
)

// Manager runs the crawl loop as a supervised service. Each cycle
// resumes from the highest stored post number, so restarts and
// overlapping pages never duplicate data.
type Manager struct {
	cfg    *config.CrawlerConfig
	client *Client
	store  registry.PostStore
	oekaki *OekakiStore
}

// NewManager builds a crawl manager. oekakiStore may be nil when image
// archiving is disabled.
func NewManager(cfg *config.CrawlerConfig, client *Client, store registry.PostStore, oekakiStore *OekakiStore) *Manager {
	return &Manager{
		cfg:    cfg,
		client: client,
		store:  store,
		oekaki: oekakiStore,
	}
}

// Serve implements suture.Service. It crawls once immediately, then on
// every interval tick until the context is cancelled.
func (m *Manager) Serve(ctx context.Context) error {
	logging.Info().
		Str("board_url", m.cfg.BoardURL).
		Dur("interval", m.cfg.Interval).
		Msg("crawler started")

	if err := m.runOnce(ctx); err != nil {
		logging.Error().Err(err).Msg("crawl cycle failed")
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("crawler stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := m.runOnce(ctx); err != nil {
				logging.Error().Err(err).Msg("crawl cycle failed")
			}
		}
	}
}

func (m *Manager) String() string { return "crawler" }

// runOnce walks board pages from the first, keeping posts newer than
// the stored high-water mark. Stops early once a page yields nothing
// new, since pages are ordered newest first.
func (m *Manager) runOnce(ctx context.Context) error {
	latest, err := m.store.LatestPostNo(ctx)
	if err != nil {
		return err
	}

	var total int64
	for page := 1; page <= m.cfg.PageLimit; page++ {
		html, err := m.client.FetchPage(ctx, page)
		if err != nil {
			return err
		}

		parsed, err := ParsePage(html)
		if err != nil {
			return err
		}

		fresh := make([]models.Post, 0, len(parsed))
		for _, p := range parsed {
			if p.Post.No <= latest {
				continue
			}
			if p.Oekaki != nil {
				if err := m.archiveOekaki(ctx, p.Oekaki); err != nil {
					logging.Warn().
						Err(err).
						Int32("oekaki_id", p.Oekaki.ID).
						Msg("failed to archive oekaki, storing post without it")
				}
			}
			fresh = append(fresh, p.Post)
		}

		if len(fresh) == 0 {
			break
		}

		n, err := m.store.InsertPosts(ctx, fresh)
		if err != nil {
			return err
		}
		total += n
		metrics.CrawlerPostsIngested.Add(float64(n))
	}

	if total > 0 {
		logging.Info().Int64("posts", total).Msg("crawl cycle complete")
	} else {
		logging.Debug().Msg("crawl cycle complete, nothing new")
	}
	return nil
}

// archiveOekaki fetches the image, uploads it when a store is
// configured, and records the oekaki row either way.
func (m *Manager) archiveOekaki(ctx context.Context, o *ParsedOekaki) error {
	record := models.Oekaki{
		ID:            o.ID,
		Title:         o.Title,
		OriginalResNo: o.OriginalResNo,
	}

	if m.oekaki != nil && o.ImageURL != "" {
		data, contentType, err := m.client.FetchImage(ctx, o.ImageURL)
		if err != nil {
			return err
		}
		key, err := m.oekaki.Upload(ctx, o.ID, data, contentType)
		if err != nil {
			return err
		}
		record.ObjectKey = key
	}

	return m.store.UpsertOekaki(ctx, record)
}
