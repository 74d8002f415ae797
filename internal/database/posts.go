// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nanashi-dev/ressearch/internal/metrics"
	"github.com/nanashi-dev/ressearch/internal/models"
)

// InsertPosts stores a batch of crawled posts inside one transaction.
// Posts whose number already exists are skipped, so re-crawling a page
// is harmless. Returns the number of rows actually written.
func (db *DB) InsertPosts(ctx context.Context, posts []models.Post) (int64, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordDBQuery("insert_posts", time.Since(start), true)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO res (no, name_and_trip, datetime, id, main_text, oekaki_id)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		metrics.RecordDBQuery("insert_posts", time.Since(start), true)
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, p := range posts {
		var id interface{}
		if p.ID != "" {
			id = p.ID
		}
		var oekakiID interface{}
		if p.OekakiID != nil {
			oekakiID = *p.OekakiID
		}
		res, err := stmt.ExecContext(ctx,
			p.No,
			p.NameAndTrip,
			p.DateTime.UTC().Format("2006-01-02 15:04:05"),
			id,
			p.MainText,
			oekakiID,
		)
		if err != nil {
			metrics.RecordDBQuery("insert_posts", time.Since(start), true)
			return 0, fmt.Errorf("failed to insert post %d: %w", p.No, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDBQuery("insert_posts", time.Since(start), true)
		return 0, fmt.Errorf("failed to commit posts: %w", err)
	}
	metrics.RecordDBQuery("insert_posts", time.Since(start), false)
	return inserted, nil
}

// LatestPostNo returns the highest stored post number, or 0 when the
// store is empty. The crawler resumes from here.
func (db *DB) LatestPostNo(ctx context.Context) (int32, error) {
	start := time.Now()
	var no int32
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(no), 0) FROM res`).Scan(&no)
	metrics.RecordDBQuery("latest_post_no", time.Since(start), err != nil)
	if err != nil {
		return 0, fmt.Errorf("failed to query latest post number: %w", err)
	}
	return no, nil
}

// UpsertOekaki stores or replaces an oekaki record.
func (db *DB) UpsertOekaki(ctx context.Context, o models.Oekaki) error {
	start := time.Now()
	var title interface{}
	if o.Title != nil {
		title = *o.Title
	}
	var originalNo interface{}
	if o.OriginalResNo != nil {
		originalNo = *o.OriginalResNo
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO oekaki (id, title, original_res_no, object_key)
		VALUES ($1, $2, $3, $4)`,
		o.ID, title, originalNo, o.ObjectKey)
	metrics.RecordDBQuery("upsert_oekaki", time.Since(start), err != nil)
	if err != nil {
		return fmt.Errorf("failed to upsert oekaki %d: %w", o.ID, err)
	}
	return nil
}
