// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package query

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayout is the naive wall-clock form bound for TIMESTAMP
// comparisons. The store keeps naive-UTC values, so binds are formatted in
// UTC without an offset and cast with ::TIMESTAMP on the SQL side.
const timestampLayout = "2006-01-02 15:04:05"

// Builder accumulates WHERE conditions together with their positional bind
// values. The running placeholder index and the bind vector live in one
// value, so the order of $n placeholders in the generated SQL always
// matches the final argument slice: every helper that binds a value does so
// through Bind, which hands out indexes strictly in call order.
//
// Example:
//
//	b := query.NewBuilder()
//	b.Like("id", "anon")
//	b.Timestamp("datetime", ">=", since)
//	sql := "SELECT ... WHERE 1=1" + b.AndClause() + " LIMIT " + b.Bind(20)
//	rows, err := conn.QueryContext(ctx, sql, b.Args()...)
type Builder struct {
	conds []string
	args  []interface{}
	next  int
}

// NewBuilder returns an empty builder; the first bind is $1.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// Bind appends value to the bind vector and returns its positional
// placeholder ("$1", "$2", ...).
func (b *Builder) Bind(value interface{}) string {
	placeholder := fmt.Sprintf("$%d", b.next)
	b.next++
	b.args = append(b.args, value)
	return placeholder
}

// Where appends a condition that carries no bind value.
func (b *Builder) Where(cond string) *Builder {
	b.conds = append(b.conds, cond)
	return b
}

// Like appends a case-sensitive substring-containment condition on column.
// The value is wrapped in %...% verbatim: literal % and _ keep their
// pattern meaning. This mirrors what board search clients have always
// observed; escaping them would silently change existing query results.
func (b *Builder) Like(column, value string) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s LIKE %s", column, b.Bind("%"+value+"%")))
	return b
}

// Timestamp appends a comparison against a TIMESTAMP column. The bound
// value is the naive-UTC wall-clock rendering of t.
func (b *Builder) Timestamp(column, op string, t time.Time) *Builder {
	placeholder := b.Bind(t.UTC().Format(timestampLayout))
	b.conds = append(b.conds, fmt.Sprintf("%s %s %s::TIMESTAMP", column, op, placeholder))
	return b
}

// Compare appends a plain binary comparison binding value.
func (b *Builder) Compare(column, op string, value interface{}) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s %s %s", column, op, b.Bind(value)))
	return b
}

// AndClause returns all accumulated conditions as a single " AND c1 AND
// c2..." suffix for appending to an existing WHERE clause, or "" when no
// condition was added.
func (b *Builder) AndClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.conds, " AND ")
}

// Conditions returns the accumulated conditions joined with AND, or "1=1"
// when none were added.
func (b *Builder) Conditions() string {
	if len(b.conds) == 0 {
		return "1=1"
	}
	return strings.Join(b.conds, " AND ")
}

// Args returns the bind vector in placeholder order.
func (b *Builder) Args() []interface{} {
	return b.args
}

// NextIndex returns the index the next Bind call will use.
func (b *Builder) NextIndex() int {
	return b.next
}

// Count returns the number of accumulated conditions.
func (b *Builder) Count() int {
	return len(b.conds)
}
