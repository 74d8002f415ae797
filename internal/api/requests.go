// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/nanashi-dev/ressearch/internal/models"
)

// RequestError is a parse failure tied to a single query parameter.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// optionalString returns a pointer when the parameter was supplied with a
// nonempty value. Empty strings are treated as absent.
func optionalString(values url.Values, key string) *string {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// parseBool accepts only the literals "true" and "false".
func parseBool(values url.Values, key string) (*bool, error) {
	v := values.Get(key)
	switch v {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, &RequestError{Field: key, Message: fmt.Sprintf("invalid boolean %q, expected true or false", v)}
	}
}

// parseDateBound parses a YYYY-MM-DD value and promotes it to a UTC
// instant: the start of the day for lower bounds, 23:59:59 for upper
// bounds.
func parseDateBound(values url.Values, key string, endOfDay bool) (*time.Time, error) {
	v := values.Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, &RequestError{Field: key, Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", v)}
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if endOfDay {
		t = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	}
	return &t, nil
}

// parseDateRange combines the since/until bounds. A range exists only
// when at least one bound is present.
func parseDateRange(values url.Values) (*models.DateTimeRange, error) {
	since, err := parseDateBound(values, "since", false)
	if err != nil {
		return nil, err
	}
	until, err := parseDateBound(values, "until", true)
	if err != nil {
		return nil, err
	}
	if since == nil && until == nil {
		return nil, nil
	}
	return &models.DateTimeRange{Since: since, Until: until}, nil
}

// parseRankingRequest maps query parameters onto RankingOptions.
// Unknown parameters are ignored.
func parseRankingRequest(values url.Values) (models.RankingOptions, error) {
	opts := models.DefaultRankingOptions()

	opts.ID = optionalString(values, "id")
	opts.MainText = optionalString(values, "main_text")
	opts.NameAndTrip = optionalString(values, "name_and_trip")

	oekaki, err := parseBool(values, "oekaki")
	if err != nil {
		return opts, err
	}
	opts.Oekaki = oekaki

	dateRange, err := parseDateRange(values)
	if err != nil {
		return opts, err
	}
	opts.DateRange = dateRange

	if v := values.Get("ranking_type"); v != "" {
		rt := models.RankingType(v)
		if !rt.Valid() {
			return opts, &RequestError{Field: "ranking_type", Message: fmt.Sprintf("invalid ranking type %q, expected post_count or recent_activity", v)}
		}
		opts.RankingType = rt
	}

	if v := values.Get("min_posts"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return opts, &RequestError{Field: "min_posts", Message: fmt.Sprintf("invalid integer %q", v)}
		}
		// Non-positive values pass through; the count threshold makes
		// 0 and 1 behave identically.
		opts.MinPosts = int32(n)
	}

	return opts, nil
}

// parseSearchRequest maps query parameters onto SearchOptions, sharing
// the filter grammar with the ranking endpoint and adding pagination.
func parseSearchRequest(values url.Values, defaultLimit, maxLimit int) (models.SearchOptions, error) {
	opts := models.SearchOptions{Limit: defaultLimit}

	opts.ID = optionalString(values, "id")
	opts.MainText = optionalString(values, "main_text")
	opts.NameAndTrip = optionalString(values, "name_and_trip")

	oekaki, err := parseBool(values, "oekaki")
	if err != nil {
		return opts, err
	}
	opts.Oekaki = oekaki

	dateRange, err := parseDateRange(values)
	if err != nil {
		return opts, err
	}
	opts.DateRange = dateRange

	if v := values.Get("cursor"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return opts, &RequestError{Field: "cursor", Message: fmt.Sprintf("invalid integer %q", v)}
		}
		c := int32(n)
		opts.Cursor = &c
	}

	asc, err := parseBool(values, "ascending")
	if err != nil {
		return opts, err
	}
	if asc != nil {
		opts.Ascending = *asc
	}

	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, &RequestError{Field: "limit", Message: fmt.Sprintf("invalid limit %q, expected a positive integer", v)}
		}
		if n > maxLimit {
			n = maxLimit
		}
		opts.Limit = n
	}

	return opts, nil
}
