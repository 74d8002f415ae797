// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package models

// SearchOptions describes a raw post search: the same filter vocabulary as
// RankingOptions plus cursor pagination. Cursor is the post number to
// continue from (exclusive); Ascending false means newest first.
type SearchOptions struct {
	ID          *string
	MainText    *string
	NameAndTrip *string
	Oekaki      *bool
	DateRange   *DateTimeRange
	Cursor      *int32
	Ascending   bool
	Limit       int
}

// PostHit is one post returned by the raw search, joined with oekaki
// metadata when the post carries an image.
type PostHit struct {
	Post
	OekakiTitle         *string
	OriginalOekakiResNo *int32
}

// SearchCount summarizes how many posts and distinct nonempty identities
// match a filter set.
type SearchCount struct {
	TotalResCount int64
	UniqueIDCount int64
}
