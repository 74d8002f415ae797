// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

// Package query builds parameterized SQL WHERE fragments with numbered
// placeholders. It exists so the ordering invariant between placeholders
// and bind values is local to one small type instead of being threaded
// through every repository method as free variables.
package query
