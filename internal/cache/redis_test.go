// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	opts := DefaultRedisCacheOptions()
	opts.URL = "redis://" + mr.Addr() + "/0"
	opts.Prefix = "test:"

	rc, err := NewRedisCache(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestRedisCache_Basic(t *testing.T) {
	rc, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "key", []byte("value"), time.Minute))
	assert.True(t, mr.Exists("test:key"))

	got, err := rc.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", string(got))

	has, err := rc.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, rc.Delete(ctx, "key"))
	_, err = rc.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.Equal(t, "redis", rc.Backend())
	assert.NoError(t, rc.Ping(ctx))
}

func TestRedisCache_TTL(t *testing.T) {
	rc, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "short", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := rc.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// zero TTL uses the default
	require.NoError(t, rc.Set(ctx, "default", []byte("v"), 0))
	assert.Equal(t, DefaultRedisCacheOptions().DefaultTTL, mr.TTL("test:default"))
}

func TestRedisCache_DeleteByPrefixAndClear(t *testing.T) {
	rc, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:keep", "x"))
	for _, k := range []string{"events:active", "events:all", "hero:active"} {
		require.NoError(t, rc.Set(ctx, k, []byte("v"), 0))
	}

	require.NoError(t, rc.DeleteByPrefix(ctx, "events:"))
	assert.False(t, mr.Exists("test:events:active"))
	assert.False(t, mr.Exists("test:events:all"))
	assert.True(t, mr.Exists("test:hero:active"))

	require.NoError(t, rc.Clear(ctx))
	assert.False(t, mr.Exists("test:hero:active"))
	assert.True(t, mr.Exists("other:keep"), "keys outside the prefix survive Clear")
}

func TestRedisCache_Stats(t *testing.T) {
	rc, _ := newTestRedis(t)
	ctx := context.Background()

	_ = rc.Set(ctx, "k", []byte("v"), 0)
	_, _ = rc.Get(ctx, "k")
	_, _ = rc.Get(ctx, "nope")

	s := rc.Stats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, int64(1), s.Sets)

	rc.ResetStats()
	assert.Zero(t, rc.Stats().Hits)
}

func TestRedisCache_Closed(t *testing.T) {
	rc, _ := newTestRedis(t)
	require.NoError(t, rc.Close())

	_, err := rc.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
}

func TestNewRedisCache_Errors(t *testing.T) {
	_, err := NewRedisCache(RedisCacheOptions{})
	assert.Error(t, err)

	_, err = NewRedisCache(RedisCacheOptions{URL: "not-a-url"})
	assert.Error(t, err)
}
