// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package metrics registers the Prometheus collectors for the HTTP API,
// the DuckDB store, and the board crawler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts HTTP requests by method, route and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration observes request latency by route.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DBQueryDuration observes DuckDB query latency per operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// DBQueryErrors counts failed DuckDB queries per operation.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// CrawlerFetchesTotal counts board page fetches by outcome.
	CrawlerFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawler_fetches_total",
			Help: "Total number of board page fetches",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	// CrawlerPostsIngested counts posts written to the res table.
	CrawlerPostsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_posts_ingested_total",
			Help: "Total number of posts ingested into the store",
		},
	)

	// CrawlerOekakiUploads counts archived oekaki images.
	CrawlerOekakiUploads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_oekaki_uploads_total",
			Help: "Total number of oekaki images uploaded to object storage",
		},
	)

	// CircuitBreakerState tracks breaker state per upstream
	// (0 = closed, 1 = half-open, 2 = open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery records one store query; failed marks it as errored.
func RecordDBQuery(operation string, duration time.Duration, failed bool) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if failed {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
