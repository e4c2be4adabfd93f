// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store is the backing data store. Every content table is reached
// through the same six verbs over column maps, so callers can cope with tables
// whose columns differ from what the application expects.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Content tables.
const (
	TableHero            = "hero_content"
	TableAbout           = "about_content"
	TableBoardMembers    = "board_members"
	TableLocalCommittees = "local_committees"
	TableMagazines       = "magazine_articles"
	TableEvents          = "events"
	TableContact         = "contact_info"
	TableSettings        = "site_settings"
	TableEventLog        = "event_log"
	TableUsers           = "users"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// Row is one record keyed by column name.
type Row map[string]any

// Keys returns the column names in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether column is present, even with a nil value.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Table is the set of verbs every content table supports.
type Table interface {
	SelectAll(ctx context.Context) ([]Row, error)
	SelectActive(ctx context.Context) ([]Row, error)
	SelectByID(ctx context.Context, id string) (Row, error)
	Insert(ctx context.Context, values Row) (Row, error)
	UpdateByID(ctx context.Context, id string, values Row) (Row, error)
	DeleteByID(ctx context.Context, id string) error
}

// Store hands out tables by name.
type Store interface {
	Table(name string) Table
}

// Error wraps a failed table operation. The driver's message is kept verbatim
// in Error() because schema-drift detection inspects it.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Table: table, Err: err}
}
