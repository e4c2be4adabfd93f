// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobNotFound is returned for an unknown job name.
var ErrJobNotFound = errors.New("job not found")

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Job describes a scheduled function.
type Job struct {
	Name        string
	Description string
	Schedule    string
	Run         func(ctx context.Context) error
	// Manual allows TriggerNow.
	Manual bool
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"default_schedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"is_overridden"`
	LastRun         time.Time `json:"last_run"`
	NextRun         time.Time `json:"next_run"`
	CanTrigger      bool      `json:"can_trigger"`
}

type registeredJob struct {
	job      Job
	schedule string // effective schedule
	entryID  cron.EntryID
}

// Registry tracks the jobs added to one cron instance.
type Registry struct {
	cron   *cron.Cron
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*registeredJob
}

// NewRegistry creates a registry over c.
func NewRegistry(c *cron.Cron, logger *slog.Logger) *Registry {
	return &Registry{
		cron:   c,
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Add validates the job's schedule and adds it to the cron instance.
func (r *Registry) Add(job Job) error {
	if strings.TrimSpace(job.Name) == "" || job.Run == nil {
		return errors.New("job needs a name and a run function")
	}
	if _, err := parser.Parse(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", job.Schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	entryID, err := r.cron.AddFunc(job.Schedule, r.wrap(job))
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", job.Name, err)
	}
	r.jobs[job.Name] = &registeredJob{job: job, schedule: job.Schedule, entryID: entryID}

	r.logger.Debug("registered scheduled job", "name", job.Name, "schedule", job.Schedule)
	return nil
}

// wrap turns a job into a cron func with a timeout and error logging.
func (r *Registry) wrap(job Job) func() {
	return func() {
		if err := r.run(job); err != nil {
			r.logger.Error("scheduled job failed", "category", "scheduler", "name", job.Name, "error", err)
		}
	}
}

func (r *Registry) run(job Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	r.logger.Debug("scheduled job finished", "name", job.Name, "duration", time.Since(start))
	return err
}

// List returns all registered jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, rj := range r.jobs {
		entry := r.cron.Entry(rj.entryID)
		result = append(result, JobInfo{
			Name:            rj.job.Name,
			Description:     rj.job.Description,
			DefaultSchedule: rj.job.Schedule,
			Schedule:        rj.schedule,
			IsOverridden:    rj.schedule != rj.job.Schedule,
			LastRun:         entry.Prev,
			NextRun:         entry.Next,
			CanTrigger:      rj.job.Manual,
		})
	}

	slices.SortFunc(result, func(a, b JobInfo) int { return strings.Compare(a.Name, b.Name) })
	return result
}

// TriggerNow runs a job immediately in the caller's goroutine.
func (r *Registry) TriggerNow(name string) error {
	r.mu.RLock()
	rj, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if !rj.job.Manual {
		return fmt.Errorf("manual trigger not available for: %s", name)
	}

	r.logger.Info("manually triggering job", "name", name)
	return r.run(rj.job)
}

// UpdateSchedule replaces a job's cron entry. On failure the old entry stays.
func (r *Registry) UpdateSchedule(name, schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rj, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	entryID, err := r.cron.AddFunc(schedule, r.wrap(rj.job))
	if err != nil {
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}
	r.cron.Remove(rj.entryID)
	rj.entryID = entryID
	rj.schedule = schedule

	r.logger.Info("updated job schedule", "name", name, "schedule", schedule)
	return nil
}

// ResetSchedule restores the job's default schedule.
func (r *Registry) ResetSchedule(name string) error {
	r.mu.RLock()
	rj, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return r.UpdateSchedule(name, rj.job.Schedule)
}
