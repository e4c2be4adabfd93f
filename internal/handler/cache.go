// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/assoc-site/internal/middleware"
)

// ContentCache is the cache control surface of the content service.
type ContentCache interface {
	Backend() string
	InvalidateAll(ctx context.Context)
	Warm(ctx context.Context)
}

// CacheHandler handles cache management endpoints.
type CacheHandler struct {
	cache  ContentCache
	logger *slog.Logger
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c ContentCache, logger *slog.Logger) *CacheHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheHandler{cache: c, logger: logger}
}

// Clear handles POST /api/v1/admin/cache/clear. With ?warm=true the public
// listings are reloaded right away.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cache.InvalidateAll(r.Context())
	warm := r.URL.Query().Get("warm") == "true"
	if warm {
		h.cache.Warm(r.Context())
	}

	h.logger.Info("content cache cleared", "category", "cache",
		"backend", h.cache.Backend(), "warm", warm, "cleared_by", middleware.GetUserID(r))
	writeData(w, http.StatusOK, map[string]any{"backend": h.cache.Backend(), "warmed": warm})
}
