// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"slices"

	"github.com/olegiv/assoc-site/internal/cache"
	"github.com/olegiv/assoc-site/internal/fallback"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/reconcile"
	"github.com/olegiv/assoc-site/internal/sanitize"
	"github.com/olegiv/assoc-site/internal/store"
)

// entity describes how one content type maps onto its table.
type entity[T any, In any] struct {
	table     string
	fromRow   func(store.Row) T
	fallback  func() []T
	meta      func(*T) *model.Meta
	normalize func(*T)
	compare   func(a, b T) int
	patch     func(In) store.Row
	validate  func(in In, errs *sanitize.Errors, create bool)

	// singleton entities redirect updates of built-in records to a create.
	singleton bool
	// drift routes writes through the event reconciler and filters activity
	// in Go, since legacy tables may lack is_active.
	drift bool
}

// read fetches, resolves against the built-in content, normalizes and sorts.
func read[T, In any](ctx context.Context, s *Service, e *entity[T, In], activeOnly bool) Listing[T] {
	keep := func(items []T) []T {
		if !activeOnly {
			return items
		}
		return slices.DeleteFunc(items, func(item T) bool { return !e.meta(&item).IsActive })
	}

	fetch := func(ctx context.Context) ([]T, error) {
		t := s.store.Table(e.table)
		var rows []store.Row
		var err error
		if activeOnly && !e.drift {
			rows, err = t.SelectActive(ctx)
		} else {
			rows, err = t.SelectAll(ctx)
		}
		if err != nil {
			return nil, err
		}
		items := make([]T, 0, len(rows))
		for _, r := range rows {
			items = append(items, e.fromRow(r))
		}
		return keep(items), nil
	}

	items, src := fallback.Resolve(ctx, s.store != nil, fetch,
		func() []T { return keep(e.fallback()) },
		func(err error) {
			s.once.Warn(ctx, "read:"+e.table, "content read failed, serving fallback",
				"category", model.EventCategoryContent,
				"table", e.table,
				"error", err,
			)
		})

	if e.normalize != nil {
		for i := range items {
			e.normalize(&items[i])
		}
	}
	slices.SortStableFunc(items, e.compare)
	return Listing[T]{Items: items, Source: src}
}

// readPublic is read of active records through the cache. Only live results
// are cached so a recovering store is picked up on the next call.
func readPublic[T, In any](ctx context.Context, s *Service, e *entity[T, In]) Listing[T] {
	if s.cache == nil {
		return read(ctx, s, e, true)
	}
	tc := cache.NewTypedCache[Listing[T]](s.cache, s.ttl)
	l, err := tc.GetOrSet(ctx, cacheKey(e.table),
		func() (*Listing[T], error) {
			l := read(ctx, s, e, true)
			return &l, nil
		},
		func(l *Listing[T]) bool { return l.Source == fallback.SourceLive },
	)
	if err != nil || l == nil {
		return read(ctx, s, e, true)
	}
	return *l
}

func create[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID string, in In, forceActive bool) (WriteResult[T], error) {
	if err := s.guard(userID); err != nil {
		return WriteResult[T]{}, err
	}

	var errs sanitize.Errors
	e.validate(in, &errs, true)
	if err := errs.Err(); err != nil {
		return WriteResult[T]{}, err
	}

	payload := e.patch(in)
	now := s.timestamp()
	payload["user_id"] = userID
	payload["created_at"] = now
	payload["updated_at"] = now
	if forceActive || !payload.Has("is_active") {
		payload["is_active"] = true
	}

	return write(ctx, s, e, "create", payload, s.store.Table(e.table).Insert)
}

func update[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID, id string, in In, forceActive bool) (WriteResult[T], error) {
	if err := s.guard(userID); err != nil {
		return WriteResult[T]{}, err
	}
	if model.IsFallbackID(id) {
		if e.singleton {
			return replaceFallback(ctx, s, e, userID, in, forceActive)
		}
		return WriteResult[T]{}, ErrFallbackRecord
	}

	var errs sanitize.Errors
	e.validate(in, &errs, false)
	if err := errs.Err(); err != nil {
		return WriteResult[T]{}, err
	}

	payload := e.patch(in)
	payload["updated_at"] = s.timestamp()
	if forceActive {
		payload["is_active"] = true
	}

	t := s.store.Table(e.table)
	return write(ctx, s, e, "update", payload, func(ctx context.Context, p store.Row) (store.Row, error) {
		return t.UpdateByID(ctx, id, p)
	})
}

func write[T, In any](ctx context.Context, s *Service, e *entity[T, In], op string, payload store.Row, do reconcile.Op) (WriteResult[T], error) {
	var (
		row    store.Row
		report reconcile.Report
		err    error
	)
	if e.drift {
		row, report, err = s.events.Mutate(ctx, payload, do)
	} else {
		row, err = do(ctx, payload)
		report = reconcile.Report{Attempts: 1, Persisted: payload.Keys(), Dropped: []string{}}
	}
	if err != nil {
		return WriteResult[T]{}, s.storeErr(op, e.table, err)
	}

	s.invalidate(ctx, e.table)

	item := e.fromRow(row)
	if e.normalize != nil {
		e.normalize(&item)
	}
	res := WriteResult[T]{Record: item, Persisted: report.Persisted, Dropped: report.Dropped}
	if len(report.Renamed) > 0 {
		res.Renamed = report.Renamed
	}
	return res, nil
}

func remove[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID, id string) error {
	if err := s.guard(userID); err != nil {
		return err
	}
	if model.IsFallbackID(id) {
		return ErrFallbackRecord
	}
	if err := s.store.Table(e.table).DeleteByID(ctx, id); err != nil {
		return s.storeErr("delete", e.table, err)
	}
	s.invalidate(ctx, e.table)
	return nil
}

// save updates the user's own active record, or creates one, and then
// deactivates the user's other records so each user has one active record.
func save[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID string, in In) (WriteResult[T], error) {
	if err := s.guard(userID); err != nil {
		return WriteResult[T]{}, err
	}

	owned, err := ownedBy(ctx, s, e, userID)
	if err != nil {
		return WriteResult[T]{}, s.storeErr("save", e.table, err)
	}

	var res WriteResult[T]
	current := slices.IndexFunc(owned, func(item T) bool { return e.meta(&item).IsActive })
	if current >= 0 {
		res, err = update(ctx, s, e, userID, e.meta(&owned[current]).ID, in, true)
	} else {
		res, err = create(ctx, s, e, userID, in, true)
	}
	if err != nil {
		return WriteResult[T]{}, err
	}

	deactivateOthers(ctx, s, e, owned, e.meta(&res.Record).ID)
	return res, nil
}

// replaceFallback stores a singleton edited from its built-in default as a
// new record of the user. An active result retires the user's other active
// records.
func replaceFallback[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID string, in In, forceActive bool) (WriteResult[T], error) {
	res, err := create(ctx, s, e, userID, in, forceActive)
	if err != nil {
		return WriteResult[T]{}, err
	}
	created := e.meta(&res.Record)
	if !created.IsActive {
		return res, nil
	}

	owned, err := ownedBy(ctx, s, e, userID)
	if err != nil {
		s.logger.Warn("listing sibling records failed",
			"category", model.EventCategoryContent,
			"table", e.table,
			"error", err,
		)
		return res, nil
	}
	deactivateOthers(ctx, s, e, owned, created.ID)
	return res, nil
}

// ownedBy returns the user's real records in the entity's order.
func ownedBy[T, In any](ctx context.Context, s *Service, e *entity[T, In], userID string) ([]T, error) {
	rows, err := s.store.Table(e.table).SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]T, 0, len(rows))
	for _, r := range rows {
		item := e.fromRow(r)
		m := e.meta(&item)
		if m.UserID != nil && *m.UserID == userID && !m.IsFallback() {
			owned = append(owned, item)
		}
	}
	slices.SortStableFunc(owned, e.compare)
	return owned, nil
}

func deactivateOthers[T, In any](ctx context.Context, s *Service, e *entity[T, In], owned []T, keepID string) {
	t := s.store.Table(e.table)
	for i := range owned {
		m := e.meta(&owned[i])
		if m.ID == keepID || !m.IsActive {
			continue
		}
		if _, err := t.UpdateByID(ctx, m.ID, store.Row{"is_active": false, "updated_at": s.timestamp()}); err != nil {
			s.logger.Warn("deactivating sibling record failed",
				"category", model.EventCategoryContent,
				"table", e.table,
				"id", m.ID,
				"error", err,
			)
		}
	}
	s.invalidate(ctx, e.table)
}

func (s *Service) storeErr(op, table string, err error) error {
	if store.IsNotFound(err) {
		return ErrNotFound
	}
	s.logger.Error("content write failed",
		"category", model.EventCategoryStore,
		"op", op,
		"table", table,
		"error", err,
	)
	return &StoreError{Op: op, Entity: table, Err: err}
}
