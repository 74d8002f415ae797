// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nanashi-dev/ressearch/internal/database/query"
	"github.com/nanashi-dev/ressearch/internal/metrics"
	"github.com/nanashi-dev/ressearch/internal/models"
)

// rankingKey returns the CTE column that drives descending order.
func rankingKey(t models.RankingType) string {
	if t == models.RankingTypeRecentActivity {
		return "latest_post_datetime"
	}
	return "post_count"
}

// buildRankingConditions appends the request's optional filters. Bind
// order is fixed: id, main_text, name_and_trip, then the date bounds.
// The oekaki predicate binds nothing.
func buildRankingConditions(b *query.Builder, opts models.RankingOptions) {
	if opts.ID != nil {
		b.Like("id", *opts.ID)
	}
	if opts.MainText != nil {
		b.Like("main_text", *opts.MainText)
	}
	if opts.NameAndTrip != nil {
		b.Like("name_and_trip", *opts.NameAndTrip)
	}
	if opts.Oekaki != nil && *opts.Oekaki {
		b.Where("oekaki_id IS NOT NULL")
	}
	if opts.DateRange != nil {
		if opts.DateRange.Since != nil {
			b.Timestamp("datetime", ">=", *opts.DateRange.Since)
		}
		if opts.DateRange.Until != nil {
			b.Timestamp("datetime", "<=", *opts.DateRange.Until)
		}
	}
}

// GetRanking produces the ranked list of posting identities matching opts,
// with per-identity aggregates.
//
// The query groups res rows by nonempty id inside a CTE, applies the
// filters before GROUP BY and the min-posts threshold in HAVING, then
// ranks with row_number() over the ordering key. row_number (not rank)
// keeps ranks dense and contiguous: equal keys get distinct consecutive
// ranks in store order.
func (db *DB) GetRanking(ctx context.Context, opts models.RankingOptions) (*models.RankingData, error) {
	qb := query.NewBuilder()
	buildRankingConditions(qb, opts)

	// The min-posts bind must take the index after every filter bind;
	// calling Bind last makes that ordering structural.
	filterClause := qb.AndClause()
	havingPlaceholder := qb.Bind(opts.MinPosts)
	key := rankingKey(opts.RankingType)

	q := fmt.Sprintf(`
		WITH ranked_ids AS (
			SELECT
				id,
				COUNT(*) AS post_count,
				MAX(no) AS latest_post_no,
				MAX(datetime) AS latest_post_datetime,
				MIN(no) AS first_post_no,
				MIN(datetime) AS first_post_datetime
			FROM res
			WHERE id IS NOT NULL AND id <> ''%s
			GROUP BY id
			HAVING COUNT(*) >= %s
		)
		SELECT
			ROW_NUMBER() OVER (ORDER BY %s DESC) AS rank,
			id,
			post_count,
			latest_post_no,
			latest_post_datetime,
			first_post_no,
			first_post_datetime
		FROM ranked_ids
		ORDER BY %s DESC`,
		filterClause, havingPlaceholder, key, key)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, q, qb.Args()...)
	metrics.RecordDBQuery("ranking", time.Since(start), err != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer rows.Close()

	ranking := []models.RankingEntry{}
	for rows.Next() {
		var entry models.RankingEntry
		var latest, first time.Time
		if err := rows.Scan(
			&entry.Rank,
			&entry.ID,
			&entry.PostCount,
			&entry.LatestPostNo,
			&latest,
			&entry.FirstPostNo,
			&first,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entry.LatestPostDateTime = promoteUTC(latest)
		entry.FirstPostDateTime = promoteUTC(first)
		ranking = append(ranking, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking rows: %w", err)
	}

	return &models.RankingData{
		Ranking:          ranking,
		TotalUniqueIDs:   int64(len(ranking)),
		SearchConditions: rankingSearchConditions(opts),
	}, nil
}

// rankingSearchConditions echoes the request filters, rendering the
// promoted date bounds as ISO-8601 strings for transport.
func rankingSearchConditions(opts models.RankingOptions) models.RankingSearchConditions {
	conds := models.RankingSearchConditions{
		ID:          opts.ID,
		MainText:    opts.MainText,
		NameAndTrip: opts.NameAndTrip,
		Oekaki:      opts.Oekaki,
	}
	if opts.DateRange != nil {
		if opts.DateRange.Since != nil {
			s := models.ISO8601(*opts.DateRange.Since)
			conds.Since = &s
		}
		if opts.DateRange.Until != nil {
			u := models.ISO8601(*opts.DateRange.Until)
			conds.Until = &u
		}
	}
	return conds
}

// promoteUTC reattaches UTC to a wall-clock timestamp read from the store.
// The store's values are naive-but-UTC, so the clock fields are
// reinterpreted in UTC, never converted.
func promoteUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
