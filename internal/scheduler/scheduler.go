// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs such as keeping the public
// content cache warm.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single job run.
const jobTimeout = 2 * time.Minute

// Warmer refreshes cached public content.
type Warmer interface {
	InvalidateAll(ctx context.Context)
	Warm(ctx context.Context)
}

// Scheduler owns the cron instance and the job registry.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Scheduler{
		cron:     c,
		registry: NewRegistry(c, logger),
		logger:   logger,
	}
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// AddCacheWarmer schedules a job that drops cached content and reloads every
// public listing.
func (s *Scheduler) AddCacheWarmer(schedule string, w Warmer) error {
	return s.registry.Add(Job{
		Name:        "cache-warm",
		Description: "Reload public content into the cache",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			w.InvalidateAll(ctx)
			w.Warm(ctx)
			return nil
		},
		Manual: true,
	})
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
