// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package query

import (
	"reflect"
	"testing"
	"time"
)

func TestBuilderEmpty(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	if got := b.AndClause(); got != "" {
		t.Errorf("AndClause() = %q, want empty", got)
	}
	if got := b.Conditions(); got != "1=1" {
		t.Errorf("Conditions() = %q, want 1=1", got)
	}
	if got := b.Args(); len(got) != 0 {
		t.Errorf("Args() = %v, want empty", got)
	}
	if got := b.NextIndex(); got != 1 {
		t.Errorf("NextIndex() = %d, want 1", got)
	}
}

func TestBuilderBindOrder(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.Like("id", "abc")
	b.Like("main_text", "hello")
	b.Compare("no", "<", int32(100))

	if got := b.NextIndex(); got != 4 {
		t.Errorf("NextIndex() = %d, want 4", got)
	}
	wantArgs := []interface{}{"%abc%", "%hello%", int32(100)}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}

	want := "id LIKE $1 AND main_text LIKE $2 AND no < $3"
	if got := b.Conditions(); got != want {
		t.Errorf("Conditions() = %q, want %q", got, want)
	}
	if got := b.AndClause(); got != " AND "+want {
		t.Errorf("AndClause() = %q, want %q", got, " AND "+want)
	}
}

func TestBuilderLikeKeepsPatternCharacters(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.Like("main_text", "100%_done")

	wantArgs := []interface{}{"%100%_done%"}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}
}

func TestBuilderTimestamp(t *testing.T) {
	t.Parallel()

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b := NewBuilder()
	b.Timestamp("datetime", ">=", since)

	want := "datetime >= $1::TIMESTAMP"
	if got := b.Conditions(); got != want {
		t.Errorf("Conditions() = %q, want %q", got, want)
	}
	wantArgs := []interface{}{"2024-06-01 00:00:00"}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}
}

func TestBuilderTimestampConvertsToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*3600)
	b := NewBuilder()
	b.Timestamp("datetime", "<=", time.Date(2024, 6, 2, 8, 59, 59, 0, loc))

	wantArgs := []interface{}{"2024-06-01 23:59:59"}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}
}

func TestBuilderWhereBindsNothing(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.Where("oekaki_id IS NOT NULL")

	if got := b.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	if got := b.NextIndex(); got != 1 {
		t.Errorf("NextIndex() = %d, want 1 after bind-free condition", got)
	}
	want := "oekaki_id IS NOT NULL"
	if got := b.Conditions(); got != want {
		t.Errorf("Conditions() = %q, want %q", got, want)
	}
}

func TestBuilderTrailingBindAfterFilters(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.Like("id", "x")
	b.Where("oekaki_id IS NOT NULL")
	b.Timestamp("datetime", ">=", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	clause := b.AndClause()
	placeholder := b.Bind(int32(3))

	if placeholder != "$3" {
		t.Errorf("trailing Bind() = %q, want $3", placeholder)
	}
	want := " AND id LIKE $1 AND oekaki_id IS NOT NULL AND datetime >= $2::TIMESTAMP"
	if clause != want {
		t.Errorf("AndClause() = %q, want %q", clause, want)
	}
	if len(b.Args()) != 3 {
		t.Errorf("len(Args()) = %d, want 3", len(b.Args()))
	}
	if b.Args()[2] != int32(3) {
		t.Errorf("Args()[2] = %v, want 3", b.Args()[2])
	}
}
