// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"html"
	"strings"

	"github.com/nanashi-dev/ressearch/internal/models"
)

// RankingItem is one ranking row in transport form.
type RankingItem struct {
	Rank               int64  `json:"rank"`
	ID                 string `json:"id"`
	PostCount          int64  `json:"post_count"`
	LatestPostNo       int32  `json:"latest_post_no"`
	LatestPostDateTime string `json:"latest_post_datetime"`
	FirstPostNo        int32  `json:"first_post_no"`
	FirstPostDateTime  string `json:"first_post_datetime"`
}

// SearchConditions echoes the request's filters back to the caller.
type SearchConditions struct {
	ID          *string `json:"id"`
	MainText    *string `json:"main_text"`
	NameAndTrip *string `json:"name_and_trip"`
	Oekaki      *bool   `json:"oekaki"`
	Since       *string `json:"since"`
	Until       *string `json:"until"`
}

// RankingResponse is the /api/v1/ranking body.
type RankingResponse struct {
	Ranking          []RankingItem    `json:"ranking"`
	TotalUniqueIDs   int64            `json:"total_unique_ids"`
	SearchConditions SearchConditions `json:"search_conditions"`
}

// toRankingResponse projects the engine output into transport form.
// Structural only: timestamps become ISO-8601 strings, everything else
// passes through.
func toRankingResponse(data *models.RankingData) RankingResponse {
	items := make([]RankingItem, len(data.Ranking))
	for i, e := range data.Ranking {
		items[i] = RankingItem{
			Rank:               e.Rank,
			ID:                 e.ID,
			PostCount:          e.PostCount,
			LatestPostNo:       e.LatestPostNo,
			LatestPostDateTime: models.ISO8601(e.LatestPostDateTime),
			FirstPostNo:        e.FirstPostNo,
			FirstPostDateTime:  models.ISO8601(e.FirstPostDateTime),
		}
	}
	return RankingResponse{
		Ranking:        items,
		TotalUniqueIDs: data.TotalUniqueIDs,
		SearchConditions: SearchConditions{
			ID:          data.SearchConditions.ID,
			MainText:    data.SearchConditions.MainText,
			NameAndTrip: data.SearchConditions.NameAndTrip,
			Oekaki:      data.SearchConditions.Oekaki,
			Since:       data.SearchConditions.Since,
			Until:       data.SearchConditions.Until,
		},
	}
}

// SearchItem is one post in transport form.
type SearchItem struct {
	No                  int32   `json:"no"`
	NameAndTrip         string  `json:"name_and_trip"`
	DateTime            string  `json:"datetime"`
	DateTimeText        string  `json:"datetime_text"`
	ID                  string  `json:"id"`
	MainText            string  `json:"main_text"`
	MainTextHTML        string  `json:"main_text_html"`
	OekakiID            *int32  `json:"oekaki_id"`
	OekakiTitle         *string `json:"oekaki_title"`
	OriginalOekakiResNo *int32  `json:"original_oekaki_res_no"`
}

// SearchResponse is the /api/v1/search body.
type SearchResponse struct {
	Results []SearchItem `json:"results"`
	Count   int          `json:"count"`
}

// CountResponse is the /api/v1/search/count body.
type CountResponse struct {
	TotalResCount int64 `json:"total_res_count"`
	UniqueIDCount int64 `json:"unique_id_count"`
}

// mainTextHTML renders a post body for direct embedding: entities
// escaped, newlines turned into <br>.
func mainTextHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

func toSearchResponse(hits []models.PostHit) SearchResponse {
	items := make([]SearchItem, len(hits))
	for i, h := range hits {
		items[i] = SearchItem{
			No:                  h.No,
			NameAndTrip:         h.NameAndTrip,
			DateTime:            models.ISO8601(h.DateTime),
			DateTimeText:        h.DateTime.Format("2006/01/02 15:04:05"),
			ID:                  h.ID,
			MainText:            h.MainText,
			MainTextHTML:        mainTextHTML(h.MainText),
			OekakiID:            h.OekakiID,
			OekakiTitle:         h.OekakiTitle,
			OriginalOekakiResNo: h.OriginalOekakiResNo,
		}
	}
	return SearchResponse{Results: items, Count: len(items)}
}
