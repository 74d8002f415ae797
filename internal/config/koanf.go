// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ressearch/config.yaml",
	"/etc/ressearch/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns built-in defaults, applied before the config file
// and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:                   "/data/ressearch.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = runtime.NumCPU()
			PreserveInsertionOrder: true,
		},
		API: APIConfig{
			DefaultLimit:    20,
			MaxLimit:        100,
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Crawler: CrawlerConfig{
			Enabled:           false,
			BoardURL:          "",
			Interval:          5 * time.Minute,
			UserAgent:         "ressearch-crawler/1.0",
			RequestsPerSecond: 1,
			PageLimit:         10,
			FetchTimeout:      20 * time.Second,
		},
		Oekaki: OekakiConfig{
			Enabled: false,
			Bucket:  "oekaki",
			UseSSL:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates it.
//
// Environment names map to koanf paths by lowercasing and splitting on the
// first underscore: SERVER_PORT -> server.port, CRAWLER_BOARD_URL ->
// crawler.board_url.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Environment variables arrive as plain strings; slice-valued keys set
	// from the environment are comma-separated.
	if origins, ok := k.Get("api.cors_origins").(string); ok {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("api.cors_origins", parts); err != nil {
			return nil, fmt.Errorf("failed to normalize api.cors_origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the path of the first existing config file, or ""
// when none exists. CONFIG_PATH takes precedence when set.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envSections are the top-level koanf keys an environment variable may
// address. Variables whose first segment is not listed here are ignored so
// unrelated process environment (PATH, HOME, ...) never leaks into config.
var envSections = map[string]bool{
	"server":   true,
	"database": true,
	"api":      true,
	"crawler":  true,
	"oekaki":   true,
	"logging":  true,
}

// envTransform maps SERVER_PORT to server.port and CRAWLER_BOARD_URL to
// crawler.board_url. Only the first underscore becomes a section separator;
// the rest of the name stays a single key.
func envTransform(name string) string {
	lower := strings.ToLower(name)
	section, rest, ok := strings.Cut(lower, "_")
	if !ok || !envSections[section] {
		return ""
	}
	return section + "." + rest
}
