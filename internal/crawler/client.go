// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package crawler fetches board pages, parses posts, and stores them.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/nanashi-dev/ressearch/internal/config"
	"github.com/nanashi-dev/ressearch/internal/logging"
	"github.com/nanashi-dev/ressearch/internal/metrics"
)

// breakerState maps gobreaker states onto the metric gauge values.
func breakerState(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Client fetches board pages with rate limiting and a circuit breaker
// around the board host.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	limiter *rate.Limiter
	baseURL string
}

// NewClient builds a board page fetcher from the crawler configuration.
func NewClient(cfg *config.CrawlerConfig) *Client {
	httpClient := resty.New().
		SetTimeout(cfg.FetchTimeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(0)

	settings := gobreaker.Settings{
		Name:        "board-fetch",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerState(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker[*resty.Response](settings),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: cfg.BoardURL,
	}
}

// FetchPage retrieves one board page as HTML. The limiter gates every
// request and the breaker opens when the board host keeps failing.
func (c *Client) FetchPage(ctx context.Context, page int) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("page", fmt.Sprintf("%d", page)).
			Get(c.baseURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("board returned status %d", resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		metrics.CrawlerFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	metrics.CrawlerFetchesTotal.WithLabelValues("ok").Inc()
	return resp.Body(), nil
}

// FetchImage retrieves an oekaki image from an absolute URL, bypassing
// the page rate budget but sharing the breaker.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
