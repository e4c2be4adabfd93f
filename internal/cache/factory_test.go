// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCache_DefaultsToMemory(t *testing.T) {
	c := NewCache(DefaultConfig(), quietLogger())
	defer func() { _ = c.Close() }()

	assert.Equal(t, "memory", c.Backend())
}

func TestNewCache_UsesRedisWhenReachable(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	c := NewCache(cfg, quietLogger())
	defer func() { _ = c.Close() }()

	assert.Equal(t, "redis", c.Backend())
}

func TestNewCache_FallsBackWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + addr
	cfg.DefaultTTL = time.Minute
	c := NewCache(cfg, quietLogger())
	defer func() { _ = c.Close() }()

	assert.Equal(t, "memory", c.Backend())
}
