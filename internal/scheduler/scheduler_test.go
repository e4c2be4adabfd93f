// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/olegiv/assoc-site/internal/testutil"
)

type fakeWarmer struct {
	invalidated atomic.Int32
	warmed      atomic.Int32
}

func (f *fakeWarmer) InvalidateAll(context.Context) { f.invalidated.Add(1) }
func (f *fakeWarmer) Warm(context.Context)          { f.warmed.Add(1) }

func TestScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(testutil.TestLoggerSilent())
	require.NoError(t, s.AddCacheWarmer("*/10 * * * *", &fakeWarmer{}))

	s.Start()
	s.Stop()
}

func TestAddCacheWarmer(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	w := &fakeWarmer{}

	require.NoError(t, s.AddCacheWarmer("@every 1h", w))

	jobs := s.Registry().List()
	require.Len(t, jobs, 1)
	assert.Equal(t, "cache-warm", jobs[0].Name)
	assert.Equal(t, "@every 1h", jobs[0].Schedule)
	assert.True(t, jobs[0].CanTrigger)
	assert.False(t, jobs[0].IsOverridden)

	require.NoError(t, s.Registry().TriggerNow("cache-warm"))
	assert.Equal(t, int32(1), w.invalidated.Load())
	assert.Equal(t, int32(1), w.warmed.Load())
}

func TestAddCacheWarmer_InvalidSchedule(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	err := s.AddCacheWarmer("every ten minutes", &fakeWarmer{})
	assert.Error(t, err)
	assert.Empty(t, s.Registry().List())
}

func TestRegistry_Add(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	r := s.Registry()
	noop := func(context.Context) error { return nil }

	require.NoError(t, r.Add(Job{Name: "b", Schedule: "@hourly", Run: noop}))
	require.NoError(t, r.Add(Job{Name: "a", Schedule: "0 3 * * *", Run: noop}))

	assert.Error(t, r.Add(Job{Name: "a", Schedule: "@hourly", Run: noop}), "duplicate name")
	assert.Error(t, r.Add(Job{Name: "", Schedule: "@hourly", Run: noop}), "missing name")
	assert.Error(t, r.Add(Job{Name: "c", Schedule: "@hourly"}), "missing run func")

	jobs := r.List()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].Name)
	assert.Equal(t, "b", jobs[1].Name)
}

func TestRegistry_TriggerNow(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	r := s.Registry()
	boom := errors.New("boom")

	require.NoError(t, r.Add(Job{Name: "auto", Schedule: "@hourly", Run: func(context.Context) error { return nil }}))
	require.NoError(t, r.Add(Job{Name: "fails", Schedule: "@hourly", Manual: true, Run: func(context.Context) error { return boom }}))

	assert.ErrorIs(t, r.TriggerNow("missing"), ErrJobNotFound)
	assert.Error(t, r.TriggerNow("auto"), "manual trigger disabled")
	assert.ErrorIs(t, r.TriggerNow("fails"), boom)
}

func TestRegistry_UpdateAndResetSchedule(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	r := s.Registry()
	require.NoError(t, r.Add(Job{Name: "job", Schedule: "@hourly", Run: func(context.Context) error { return nil }}))

	assert.Error(t, r.UpdateSchedule("job", "not cron"))
	assert.ErrorIs(t, r.UpdateSchedule("missing", "@daily"), ErrJobNotFound)

	require.NoError(t, r.UpdateSchedule("job", "@daily"))
	info := r.List()[0]
	assert.Equal(t, "@daily", info.Schedule)
	assert.True(t, info.IsOverridden)

	require.NoError(t, r.ResetSchedule("job"))
	info = r.List()[0]
	assert.Equal(t, "@hourly", info.Schedule)
	assert.False(t, info.IsOverridden)
}
