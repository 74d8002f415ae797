// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package models

import "time"

// Post is a single res row. The crawler owns the table; the search and
// ranking repositories only read it.
//
// DateTime is stored naive in the store but is always wall-clock UTC; it
// carries time.UTC on this side of the mapping boundary. No and DateTime
// are monotonic together within a board.
type Post struct {
	No          int32
	NameAndTrip string
	DateTime    time.Time
	ID          string // posting identity for the day; may be empty
	MainText    string
	OekakiID    *int32
}

// Oekaki is metadata for a user-drawn image attached to a post. ObjectKey
// points at the archived image in the object store; it is empty when image
// archiving is disabled.
type Oekaki struct {
	ID            int32
	Title         *string
	OriginalResNo *int32
	ObjectKey     string
}

// ISO8601 renders a timestamp with an explicit numeric offset
// ("2024-12-31T23:59:59+00:00"). UTC instants deliberately render as
// "+00:00" rather than "Z" to match what board clients already parse.
func ISO8601(t time.Time) string {
	return t.Format("2006-01-02T15:04:05-07:00")
}
