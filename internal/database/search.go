// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nanashi-dev/ressearch/internal/database/query"
	"github.com/nanashi-dev/ressearch/internal/metrics"
	"github.com/nanashi-dev/ressearch/internal/models"
)

// buildSearchConditions appends the post-level filters shared by
// SearchPosts and CountPosts.
func buildSearchConditions(b *query.Builder, opts models.SearchOptions) {
	if opts.ID != nil {
		b.Like("r.id", *opts.ID)
	}
	if opts.MainText != nil {
		b.Like("r.main_text", *opts.MainText)
	}
	if opts.NameAndTrip != nil {
		b.Like("r.name_and_trip", *opts.NameAndTrip)
	}
	if opts.Oekaki != nil && *opts.Oekaki {
		b.Where("r.oekaki_id IS NOT NULL")
	}
	if opts.DateRange != nil {
		if opts.DateRange.Since != nil {
			b.Timestamp("r.datetime", ">=", *opts.DateRange.Since)
		}
		if opts.DateRange.Until != nil {
			b.Timestamp("r.datetime", "<=", *opts.DateRange.Until)
		}
	}
}

// SearchPosts returns individual posts matching opts, newest first unless
// opts.Ascending is set, paginated by post-number cursor.
func (db *DB) SearchPosts(ctx context.Context, opts models.SearchOptions) ([]models.PostHit, error) {
	qb := query.NewBuilder()
	buildSearchConditions(qb, opts)

	order := "DESC"
	cursorOp := "<"
	if opts.Ascending {
		order = "ASC"
		cursorOp = ">"
	}
	if opts.Cursor != nil {
		qb.Compare("r.no", cursorOp, *opts.Cursor)
	}
	limitPlaceholder := qb.Bind(opts.Limit)

	q := fmt.Sprintf(`
		SELECT
			r.no,
			r.name_and_trip,
			r.datetime,
			r.id,
			r.main_text,
			r.oekaki_id,
			o.title,
			o.original_res_no
		FROM res r
		LEFT JOIN oekaki o ON r.oekaki_id = o.id
		WHERE %s
		ORDER BY r.no %s
		LIMIT %s`,
		qb.Conditions(), order, limitPlaceholder)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, q, qb.Args()...)
	metrics.RecordDBQuery("search", time.Since(start), err != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	hits := []models.PostHit{}
	for rows.Next() {
		var hit models.PostHit
		var dt time.Time
		var id sql.NullString
		var oekakiID, originalNo sql.NullInt32
		var title sql.NullString
		if err := rows.Scan(
			&hit.No,
			&hit.NameAndTrip,
			&dt,
			&id,
			&hit.MainText,
			&oekakiID,
			&title,
			&originalNo,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		hit.DateTime = promoteUTC(dt)
		if id.Valid {
			hit.ID = id.String
		}
		if oekakiID.Valid {
			v := oekakiID.Int32
			hit.OekakiID = &v
		}
		if title.Valid {
			v := title.String
			hit.OekakiTitle = &v
		}
		if originalNo.Valid {
			v := originalNo.Int32
			hit.OriginalOekakiResNo = &v
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return hits, nil
}

// CountPosts returns the number of posts matching opts and the number of
// distinct nonempty posting identities among them.
func (db *DB) CountPosts(ctx context.Context, opts models.SearchOptions) (*models.SearchCount, error) {
	qb := query.NewBuilder()
	buildSearchConditions(qb, opts)

	q := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total_res_count,
			COUNT(DISTINCT CASE WHEN r.id IS NOT NULL AND r.id <> '' THEN r.id END) AS unique_id_count
		FROM res r
		WHERE %s`,
		qb.Conditions())

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, q, qb.Args()...)

	var count models.SearchCount
	err := row.Scan(&count.TotalResCount, &count.UniqueIDCount)
	metrics.RecordDBQuery("count", time.Since(start), err != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	return &count, nil
}
