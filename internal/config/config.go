// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package config loads application configuration with Koanf v2 from
// layered sources (highest priority wins): environment variables, an
// optional YAML config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration. Immutable after Load and
// safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Crawler  CrawlerConfig  `koanf:"crawler"`
	Oekaki   OekakiConfig   `koanf:"oekaki"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment variables:
//   - SERVER_HOST (default 0.0.0.0)
//   - SERVER_PORT (default 8080)
//   - SERVER_READ_TIMEOUT / SERVER_WRITE_TIMEOUT (default 30s)
//   - SERVER_SHUTDOWN_TIMEOUT (default 10s)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings. Path ":memory:" is supported for
// tests. Threads 0 means runtime.NumCPU().
type DatabaseConfig struct {
	Path                   string `koanf:"path" validate:"required"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// APIConfig holds request handling limits.
//
//   - DefaultLimit / MaxLimit bound the raw search page size. The ranking
//     endpoint is unpaginated and unaffected.
//   - RateLimitReqs per RateLimitWindow applies per client IP.
type APIConfig struct {
	DefaultLimit    int           `koanf:"default_limit" validate:"min=1"`
	MaxLimit        int           `koanf:"max_limit" validate:"min=1"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// CrawlerConfig holds board ingestion settings. The crawler is disabled by
// default so the API can serve an existing store on its own.
type CrawlerConfig struct {
	Enabled           bool          `koanf:"enabled"`
	BoardURL          string        `koanf:"board_url"`
	Interval          time.Duration `koanf:"interval"`
	UserAgent         string        `koanf:"user_agent"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	PageLimit         int           `koanf:"page_limit"`
	FetchTimeout      time.Duration `koanf:"fetch_timeout"`
}

// OekakiConfig holds S3-compatible object storage settings for archiving
// oekaki images. Disabled by default; when disabled the crawler records
// oekaki metadata without an object key.
type OekakiConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	UseSSL    bool   `koanf:"use_ssl"`
}

// LoggingConfig holds log output settings (level, json/console format,
// optional caller annotation).
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate runs the struct tag validations plus the cross-field checks
// the tags cannot express.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("api.max_limit (%d) must be >= api.default_limit (%d)",
			c.API.MaxLimit, c.API.DefaultLimit)
	}
	if c.Crawler.Enabled {
		if c.Crawler.BoardURL == "" {
			return fmt.Errorf("crawler.board_url is required when the crawler is enabled")
		}
		if _, err := url.ParseRequestURI(c.Crawler.BoardURL); err != nil {
			return fmt.Errorf("crawler.board_url is not a valid URL: %w", err)
		}
		if c.Crawler.Interval <= 0 {
			return fmt.Errorf("crawler.interval must be positive, got %s", c.Crawler.Interval)
		}
		if c.Crawler.RequestsPerSecond <= 0 {
			return fmt.Errorf("crawler.requests_per_second must be positive, got %g",
				c.Crawler.RequestsPerSecond)
		}
	}
	if c.Oekaki.Enabled {
		if c.Oekaki.Endpoint == "" || c.Oekaki.Bucket == "" {
			return fmt.Errorf("oekaki.endpoint and oekaki.bucket are required when oekaki storage is enabled")
		}
	}
	return nil
}
