// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/models"
	"github.com/nanashi-dev/ressearch/internal/registry"
)

type fakeRanking struct {
	data     *models.RankingData
	err      error
	lastOpts *models.RankingOptions
}

func (f *fakeRanking) GetRanking(_ context.Context, opts models.RankingOptions) (*models.RankingData, error) {
	f.lastOpts = &opts
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeSearch struct {
	hits  []models.PostHit
	count *models.SearchCount
	err   error
}

func (f *fakeSearch) SearchPosts(context.Context, models.SearchOptions) ([]models.PostHit, error) {
	return f.hits, f.err
}

func (f *fakeSearch) CountPosts(context.Context, models.SearchOptions) (*models.SearchCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.count, nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			DefaultLimit:    20,
			MaxLimit:        100,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

func testHandler(ranking *fakeRanking, search *fakeSearch, pinger *fakePinger) *Handler {
	if ranking == nil {
		ranking = &fakeRanking{data: &models.RankingData{Ranking: []models.RankingEntry{}}}
	}
	if search == nil {
		search = &fakeSearch{count: &models.SearchCount{}}
	}
	if pinger == nil {
		pinger = &fakePinger{}
	}
	reg := registry.NewWithRepositories(ranking, search, nil, pinger)
	return NewHandler(reg, testConfig())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestGetRankingHandler(t *testing.T) {
	t.Parallel()

	ranking := &fakeRanking{
		data: &models.RankingData{
			Ranking: []models.RankingEntry{
				{
					Rank:               1,
					ID:                 "AAAAAAAA",
					PostCount:          5,
					LatestPostNo:       50,
					LatestPostDateTime: time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC),
					FirstPostNo:        10,
					FirstPostDateTime:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
				},
			},
			TotalUniqueIDs: 1,
		},
	}
	h := testHandler(ranking, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ranking?min_posts=2&ranking_type=recent_activity", nil)
	rec := httptest.NewRecorder()
	h.GetRanking(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if ranking.lastOpts == nil {
		t.Fatalf("repository never called")
	}
	if ranking.lastOpts.MinPosts != 2 {
		t.Errorf("repository got MinPosts %d, want 2", ranking.lastOpts.MinPosts)
	}
	if ranking.lastOpts.RankingType != models.RankingTypeRecentActivity {
		t.Errorf("repository got RankingType %q, want recent_activity", ranking.lastOpts.RankingType)
	}

	var body RankingResponse
	decodeBody(t, rec, &body)
	if body.TotalUniqueIDs != 1 || len(body.Ranking) != 1 {
		t.Fatalf("body = %+v, want one entry", body)
	}
	if body.Ranking[0].LatestPostDateTime != "2024-12-01T09:30:00+00:00" {
		t.Errorf("latest datetime = %q, want ISO-8601 with +00:00", body.Ranking[0].LatestPostDateTime)
	}
}

func TestGetRankingHandlerMalformedDate(t *testing.T) {
	t.Parallel()

	ranking := &fakeRanking{data: &models.RankingData{}}
	h := testHandler(ranking, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ranking?since=yesterday", nil)
	rec := httptest.NewRecorder()
	h.GetRanking(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ranking.lastOpts != nil {
		t.Errorf("repository was called despite the parse failure")
	}

	var body errorEnvelope
	decodeBody(t, rec, &body)
	if body.Error.Code != CodeValidationError {
		t.Errorf("error code = %q, want %s", body.Error.Code, CodeValidationError)
	}
	if !strings.Contains(body.Error.Message, "since") {
		t.Errorf("error message %q does not name the since field", body.Error.Message)
	}
}

func TestGetRankingHandlerStorageError(t *testing.T) {
	t.Parallel()

	h := testHandler(&fakeRanking{err: errors.New("connection refused")}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ranking", nil)
	rec := httptest.NewRecorder()
	h.GetRanking(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body errorEnvelope
	decodeBody(t, rec, &body)
	if body.Error.Code != CodeDatabaseError {
		t.Errorf("error code = %q, want %s", body.Error.Code, CodeDatabaseError)
	}
	// The detailed cause is logged, never surfaced.
	if strings.Contains(body.Error.Message, "connection refused") {
		t.Errorf("internal error detail leaked into response: %q", body.Error.Message)
	}
}

func TestGetSearchHandler(t *testing.T) {
	t.Parallel()

	search := &fakeSearch{
		hits: []models.PostHit{
			{Post: models.Post{No: 5, NameAndTrip: "名無しさん", DateTime: time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), ID: "CCCCCCCC", MainText: "hi"}},
		},
	}
	h := testHandler(nil, search, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?id=CCC", nil)
	rec := httptest.NewRecorder()
	h.GetSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body SearchResponse
	decodeBody(t, rec, &body)
	if body.Count != 1 || len(body.Results) != 1 {
		t.Fatalf("body = %+v, want one result", body)
	}
	if body.Results[0].No != 5 {
		t.Errorf("result no = %d, want 5", body.Results[0].No)
	}
}

func TestGetSearchCountHandler(t *testing.T) {
	t.Parallel()

	search := &fakeSearch{count: &models.SearchCount{TotalResCount: 12, UniqueIDCount: 4}}
	h := testHandler(nil, search, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/count", nil)
	rec := httptest.NewRecorder()
	h.GetSearchCount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body CountResponse
	decodeBody(t, rec, &body)
	if body.TotalResCount != 12 || body.UniqueIDCount != 4 {
		t.Errorf("body = %+v, want 12/4", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	h := testHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	h.GetLiveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readiness status = %d, want 200", rec.Code)
	}

	down := testHandler(nil, nil, &fakePinger{err: errors.New("store down")})
	rec = httptest.NewRecorder()
	down.GetReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness status with dead store = %d, want 503", rec.Code)
	}
}

func TestRouterWiring(t *testing.T) {
	t.Parallel()

	h := testHandler(nil, nil, nil)
	router := NewRouter(h)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/ranking", http.StatusOK},
		{"/api/v1/search", http.StatusOK},
		{"/api/v1/search/count", http.StatusOK},
		{"/api/v1/health", http.StatusOK},
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}
