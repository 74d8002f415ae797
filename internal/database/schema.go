// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds schema statements; they run once at startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the res and oekaki tables plus their indexes.
//
// res.datetime is a naive TIMESTAMP holding wall-clock UTC; the mapping
// layer attaches the UTC offset when reading. res.id is nullable on
// purpose: posts without an identity exist on the board and the ranking
// engine filters them out itself.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS res (
			no INTEGER PRIMARY KEY,
			name_and_trip TEXT NOT NULL,
			datetime TIMESTAMP NOT NULL,
			id TEXT,
			main_text TEXT NOT NULL,
			oekaki_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS oekaki (
			id INTEGER PRIMARY KEY,
			title TEXT,
			original_res_no INTEGER,
			object_key TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_res_id ON res(id)`,
		`CREATE INDEX IF NOT EXISTS idx_res_datetime ON res(datetime)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
