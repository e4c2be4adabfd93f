// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/olegiv/assoc-site/internal/store"
)

// Store verbs, as recorded in Call.Verb.
const (
	VerbSelectAll    = "select_all"
	VerbSelectActive = "select_active"
	VerbSelectByID   = "select_by_id"
	VerbInsert       = "insert"
	VerbUpdateByID   = "update_by_id"
	VerbDeleteByID   = "delete_by_id"
)

// Call is one recorded store call.
type Call struct {
	Table  string
	Verb   string
	ID     string
	Values store.Row
}

// FakeStore is an in-memory store.Store. Every call is recorded.
//
// Columns, when set for a table, restricts the columns it accepts and the
// fake answers with SQLite's unknown-column wording otherwise. Fail, when
// set, is consulted before every call and its error is returned as is.
type FakeStore struct {
	Columns map[string][]string
	Fail    func(table, verb string, values store.Row) error

	mu     sync.Mutex
	rows   map[string][]store.Row
	calls  []Call
	nextID int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{rows: make(map[string][]store.Row)}
}

// Table implements store.Store.
func (f *FakeStore) Table(name string) store.Table {
	return &fakeTable{f: f, name: name}
}

// Seed adds rows to table without recording calls.
func (f *FakeStore) Seed(table string, rows ...store.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.rows[table] = append(f.rows[table], r.Clone())
	}
}

// Rows returns a copy of table's rows.
func (f *FakeStore) Rows(table string) []store.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Row, 0, len(f.rows[table]))
	for _, r := range f.rows[table] {
		out = append(out, r.Clone())
	}
	return out
}

// Calls returns the recorded calls.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls with the given verb.
func (f *FakeStore) CallsTo(verb string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Verb == verb {
			out = append(out, c)
		}
	}
	return out
}

type fakeTable struct {
	f    *FakeStore
	name string
}

func (t *fakeTable) begin(verb, id string, values store.Row) error {
	t.f.mu.Lock()
	t.f.calls = append(t.f.calls, Call{Table: t.name, Verb: verb, ID: id, Values: values.Clone()})
	fail := t.f.Fail
	t.f.mu.Unlock()

	if fail != nil {
		if err := fail(t.name, verb, values); err != nil {
			return err
		}
	}
	return nil
}

func (t *fakeTable) unknownColumn(values store.Row, insert bool) error {
	allowed, ok := t.f.Columns[t.name]
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		set[c] = true
	}
	for _, c := range values.Keys() {
		if set[c] {
			continue
		}
		if insert {
			return fmt.Errorf("table %s has no column named %s", t.name, c)
		}
		return fmt.Errorf("no such column: %s", c)
	}
	return nil
}

func (t *fakeTable) SelectAll(_ context.Context) ([]store.Row, error) {
	if err := t.begin(VerbSelectAll, "", nil); err != nil {
		return nil, err
	}
	return t.f.Rows(t.name), nil
}

func (t *fakeTable) SelectActive(_ context.Context) ([]store.Row, error) {
	if err := t.begin(VerbSelectActive, "", nil); err != nil {
		return nil, err
	}
	if err := t.unknownColumn(store.Row{"is_active": true}, false); err != nil {
		return nil, err
	}
	var out []store.Row
	for _, r := range t.f.Rows(t.name) {
		if r.Bool("is_active", false) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *fakeTable) SelectByID(_ context.Context, id string) (store.Row, error) {
	if err := t.begin(VerbSelectByID, id, nil); err != nil {
		return nil, err
	}
	for _, r := range t.f.Rows(t.name) {
		if fmt.Sprint(r["id"]) == id {
			return r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *fakeTable) Insert(_ context.Context, values store.Row) (store.Row, error) {
	if err := t.begin(VerbInsert, "", values); err != nil {
		return nil, err
	}
	if err := t.unknownColumn(values, true); err != nil {
		return nil, err
	}

	row := values.Clone()
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if id, ok := row["id"]; !ok || id == nil || id == "" {
		t.f.nextID++
		row["id"] = "id-" + strconv.Itoa(t.f.nextID)
	}
	t.f.rows[t.name] = append(t.f.rows[t.name], row)
	return row.Clone(), nil
}

func (t *fakeTable) UpdateByID(_ context.Context, id string, values store.Row) (store.Row, error) {
	if err := t.begin(VerbUpdateByID, id, values); err != nil {
		return nil, err
	}
	if err := t.unknownColumn(values, false); err != nil {
		return nil, err
	}

	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	for _, r := range t.f.rows[t.name] {
		if fmt.Sprint(r["id"]) == id {
			for k, v := range values {
				r[k] = v
			}
			return r.Clone(), nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *fakeTable) DeleteByID(_ context.Context, id string) error {
	if err := t.begin(VerbDeleteByID, id, nil); err != nil {
		return err
	}

	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	rows := t.f.rows[t.name]
	for i, r := range rows {
		if fmt.Sprint(r["id"]) == id {
			t.f.rows[t.name] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
