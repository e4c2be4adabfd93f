// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/version"
)

// Pinger checks that the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        Pinger
	backend   func() string
	startTime time.Time
}

// NewHealthHandler creates a health handler. A nil db means no store is
// configured, which is reported but is not unhealthy: the site serves
// built-in content.
func NewHealthHandler(db Pinger, cacheBackend func() string) *HealthHandler {
	return &HealthHandler{db: db, backend: cacheBackend, startTime: time.Now()}
}

// HealthStatus is the /health response.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime,omitempty"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. Check details are only shown to logged-in
// users.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	store := h.checkStore(r.Context())

	status := HealthStatus{Status: "healthy", Timestamp: time.Now().UTC()}
	code := http.StatusOK
	if store.Status == "unhealthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if middleware.GetUserID(r) != "" {
		status.Uptime = time.Since(h.startTime).Round(time.Second).String()
		status.Version = version.Get().String()
		status.Checks = map[string]Check{
			"store": store,
			"cache": {Status: "healthy", Message: h.cacheBackend()},
		}
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.checkStore(r.Context()).Status == "unhealthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) checkStore(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "not_configured", Message: "serving built-in content"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Message: "database unreachable"}
	}
	return Check{Status: "healthy", Latency: time.Since(start).Round(time.Microsecond).String()}
}

func (h *HealthHandler) cacheBackend() string {
	if h.backend == nil {
		return "none"
	}
	return h.backend()
}
