// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package models defines the domain entities and the filter vocabulary
// shared by the HTTP layer, the repositories, and the crawler.
//
// The types here are transport- and storage-independent: the api package
// projects them into JSON, the database package maps rows into them, and
// the crawler produces them from board pages.
package models
