// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Command server runs the post search API and, when enabled, the board
// crawler, under one supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nanashi-dev/ressearch/internal/api"
	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/crawler"
	"github.com/nanashi-dev/ressearch/internal/database"
	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/registry"
	"github.com/nanashi-dev/ressearch/internal/supervisor"
	"github.com/nanashi-dev/ressearch/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reg := registry.New(db)

	handler := api.NewHandler(reg, cfg)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if cfg.Crawler.Enabled {
		var oekakiStore *crawler.OekakiStore
		if cfg.Oekaki.Enabled {
			oekakiStore, err = crawler.NewOekakiStore(ctx, &cfg.Oekaki)
			if err != nil {
				return fmt.Errorf("failed to connect to oekaki store: %w", err)
			}
		}
		client := crawler.NewClient(&cfg.Crawler)
		tree.AddIngestService(crawler.NewManager(&cfg.Crawler, client, reg.Posts(), oekakiStore))
	}

	logging.Info().
		Str("addr", server.Addr).
		Bool("crawler", cfg.Crawler.Enabled).
		Msg("starting ressearch")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info().Msg("shutdown complete")
	return nil
}
