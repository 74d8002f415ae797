// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package models

import "time"

// RankingType selects the aggregate that drives descending order.
type RankingType string

const (
	// RankingTypePostCount orders identities by per-identity post count.
	RankingTypePostCount RankingType = "post_count"

	// RankingTypeRecentActivity orders identities by their most recent
	// post's timestamp.
	RankingTypeRecentActivity RankingType = "recent_activity"
)

// Valid reports whether t is one of the known ranking types.
func (t RankingType) Valid() bool {
	return t == RankingTypePostCount || t == RankingTypeRecentActivity
}

// DateTimeRange is an inclusive range on post datetimes. Either bound may
// be absent; a range with both bounds absent is represented as a nil
// *DateTimeRange, never as an empty value.
type DateTimeRange struct {
	Since *time.Time
	Until *time.Time
}

// RankingOptions is the canonical representation of a ranking request:
// a sparse set of optional filters plus the ranking policy. All string
// filters are case-sensitive substring containment. Oekaki only filters
// when set and true; false imposes no predicate on the image column.
//
// Constructed once per request by the api package and consumed once by the
// ranking repository.
type RankingOptions struct {
	ID          *string
	MainText    *string
	NameAndTrip *string
	Oekaki      *bool
	DateRange   *DateTimeRange
	RankingType RankingType
	MinPosts    int32
}

// DefaultRankingOptions returns options with no filters, post-count
// ordering, and a minimum of one post per identity.
func DefaultRankingOptions() RankingOptions {
	return RankingOptions{
		RankingType: RankingTypePostCount,
		MinPosts:    1,
	}
}

// RankingEntry is one ranked identity with its aggregate statistics.
// ID is never empty: NULL and empty identities are excluded by the engine.
type RankingEntry struct {
	Rank               int64
	ID                 string
	PostCount          int64
	LatestPostNo       int32
	LatestPostDateTime time.Time
	FirstPostNo        int32
	FirstPostDateTime  time.Time
}

// RankingSearchConditions echoes the request's filters back to the caller.
// Since and Until are the promoted instants rendered as ISO-8601 strings.
type RankingSearchConditions struct {
	ID          *string
	MainText    *string
	NameAndTrip *string
	Oekaki      *bool
	Since       *string
	Until       *string
}

// RankingData is the engine's output for one request. Ranking is sorted by
// the ranking key descending with dense ranks 1..N, and TotalUniqueIDs
// always equals len(Ranking).
type RankingData struct {
	Ranking          []RankingEntry
	TotalUniqueIDs   int64
	SearchConditions RankingSearchConditions
}
