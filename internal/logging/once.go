// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Once logs each key at most once per process. Later calls with a key that
// was already logged are dropped. The latch is never reset.
type Once struct {
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewOnce wraps logger. A nil logger uses slog.Default.
func NewOnce(logger *slog.Logger) *Once {
	if logger == nil {
		logger = slog.Default()
	}
	return &Once{logger: logger, seen: make(map[string]bool)}
}

// Warn logs msg at WARN level unless key was logged before.
// It reports whether the message was written.
func (o *Once) Warn(ctx context.Context, key, msg string, args ...any) bool {
	if !o.latch(key) {
		return false
	}
	o.logger.WarnContext(ctx, msg, args...)
	return true
}

// Logged reports whether key has been logged.
func (o *Once) Logged(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.seen[key]
}

func (o *Once) latch(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen[key] {
		return false
	}
	o.seen[key] = true
	return true
}
