// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content is the single entry point for reading and writing site
// content. Reads never fail: they fall back to built-in content. Writes never
// touch built-in content and report which fields were actually stored.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/assoc-site/internal/cache"
	"github.com/olegiv/assoc-site/internal/fallback"
	"github.com/olegiv/assoc-site/internal/logging"
	"github.com/olegiv/assoc-site/internal/reconcile"
	"github.com/olegiv/assoc-site/internal/store"
)

var (
	// ErrNotConfigured is returned by writes when no store is configured.
	ErrNotConfigured = errors.New("content store is not configured")
	// ErrUnauthenticated is returned by writes without a user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrFallbackRecord is returned when a write targets built-in content.
	ErrFallbackRecord = errors.New("built-in content cannot be modified, create a record instead")
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("record not found")
)

// StoreError is a failed store call on the write path.
type StoreError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Listing is the result of a read.
type Listing[T any] struct {
	Items  []T             `json:"items"`
	Source fallback.Source `json:"source"`
}

// WriteResult is the result of a create or update.
type WriteResult[T any] struct {
	Record    T                 `json:"record"`
	Persisted []string          `json:"persisted_fields"`
	Dropped   []string          `json:"dropped_fields"`
	Renamed   map[string]string `json:"renamed_fields,omitempty"`
}

// Options configures a Service.
type Options struct {
	// Cache enables caching of public reads. Nil disables it.
	Cache    cache.Cache
	CacheTTL time.Duration

	Logger *slog.Logger

	// Now is the clock used for timestamps. Nil uses time.Now.
	Now func() time.Time
}

// Service reads and writes every content entity.
type Service struct {
	store  store.Store
	once   *logging.Once
	logger *slog.Logger
	cache  cache.Cache
	ttl    time.Duration
	now    func() time.Time
	events *reconcile.Reconciler
}

// New creates a Service. A nil store means the store is not configured:
// reads serve built-in content and writes fail with ErrNotConfigured.
func New(st store.Store, once *logging.Once, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if once == nil {
		once = logging.NewOnce(logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		store:  st,
		once:   once,
		logger: logger,
		cache:  opts.Cache,
		ttl:    ttl,
		now:    now,
		events: reconcile.New(reconcile.EventRules, logger),
	}
}

// Configured reports whether a store is configured.
func (s *Service) Configured() bool {
	return s.store != nil
}

// Backend names the cache backend, or "none".
func (s *Service) Backend() string {
	if s.cache == nil {
		return "none"
	}
	return s.cache.Backend()
}

func (s *Service) guard(userID string) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func cacheKey(table string) string {
	return "content:" + table + ":active"
}

func (s *Service) invalidate(ctx context.Context, table string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, "content:"+table+":"); err != nil {
		s.logger.Warn("cache invalidation failed", "category", "cache", "table", table, "error", err)
	}
}

// InvalidateAll drops every cached read.
func (s *Service) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, "content:"); err != nil {
		s.logger.Warn("cache invalidation failed", "category", "cache", "error", err)
	}
}
