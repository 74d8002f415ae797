// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"testing"
	"time"

	"github.com/nanashi-dev/ressearch/internal/models"
)

func TestToRankingResponse(t *testing.T) {
	t.Parallel()

	id := "abc"
	since := "2024-01-01T00:00:00+00:00"
	data := &models.RankingData{
		Ranking: []models.RankingEntry{
			{
				Rank:               1,
				ID:                 "AAAAAAAA",
				PostCount:          42,
				LatestPostNo:       1234,
				LatestPostDateTime: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
				FirstPostNo:        17,
				FirstPostDateTime:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		TotalUniqueIDs: 1,
		SearchConditions: models.RankingSearchConditions{
			ID:    &id,
			Since: &since,
		},
	}

	resp := toRankingResponse(data)

	if len(resp.Ranking) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Ranking))
	}
	item := resp.Ranking[0]
	if item.LatestPostDateTime != "2024-12-31T23:59:59+00:00" {
		t.Errorf("latest datetime = %q, want 2024-12-31T23:59:59+00:00", item.LatestPostDateTime)
	}
	if item.FirstPostDateTime != "2024-01-01T00:00:00+00:00" {
		t.Errorf("first datetime = %q, want 2024-01-01T00:00:00+00:00", item.FirstPostDateTime)
	}
	if item.Rank != 1 || item.PostCount != 42 || item.LatestPostNo != 1234 || item.FirstPostNo != 17 {
		t.Errorf("numeric fields not passed through: %+v", item)
	}
	if resp.TotalUniqueIDs != 1 {
		t.Errorf("TotalUniqueIDs = %d, want 1", resp.TotalUniqueIDs)
	}
	if resp.SearchConditions.ID == nil || *resp.SearchConditions.ID != "abc" {
		t.Errorf("conditions id = %v, want abc", resp.SearchConditions.ID)
	}
	if resp.SearchConditions.Since == nil || *resp.SearchConditions.Since != since {
		t.Errorf("conditions since = %v, want %q", resp.SearchConditions.Since, since)
	}
	if resp.SearchConditions.MainText != nil {
		t.Errorf("absent condition echoed as non-nil")
	}
}

func TestToRankingResponseEmpty(t *testing.T) {
	t.Parallel()

	resp := toRankingResponse(&models.RankingData{Ranking: []models.RankingEntry{}})
	if resp.Ranking == nil {
		t.Errorf("empty ranking must serialize as [], not null")
	}
	if len(resp.Ranking) != 0 {
		t.Errorf("got %d items, want 0", len(resp.Ranking))
	}
}

func TestMainTextHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newlines", "line1\nline2", "line1<br>line2"},
		{"escapes markup", "<b>bold</b> & more", "&lt;b&gt;bold&lt;/b&gt; &amp; more"},
		{"both", "a<b\nc", "a&lt;b<br>c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mainTextHTML(tt.in); got != tt.want {
				t.Errorf("mainTextHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToSearchResponse(t *testing.T) {
	t.Parallel()

	title := "doodle"
	oekakiID := int32(9)
	hits := []models.PostHit{
		{
			Post: models.Post{
				No:          3,
				NameAndTrip: "名無しさん",
				DateTime:    time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
				ID:          "AAAAAAAA",
				MainText:    "look\nat this",
				OekakiID:    &oekakiID,
			},
			OekakiTitle: &title,
		},
	}

	resp := toSearchResponse(hits)

	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("count = %d, results = %d, want 1 each", resp.Count, len(resp.Results))
	}
	item := resp.Results[0]
	if item.DateTime != "2024-06-03T10:00:00+00:00" {
		t.Errorf("datetime = %q, want 2024-06-03T10:00:00+00:00", item.DateTime)
	}
	if item.DateTimeText != "2024/06/03 10:00:00" {
		t.Errorf("datetime_text = %q, want 2024/06/03 10:00:00", item.DateTimeText)
	}
	if item.MainTextHTML != "look<br>at this" {
		t.Errorf("main_text_html = %q, want look<br>at this", item.MainTextHTML)
	}
	if item.OekakiTitle == nil || *item.OekakiTitle != "doodle" {
		t.Errorf("oekaki_title = %v, want doodle", item.OekakiTitle)
	}
}
