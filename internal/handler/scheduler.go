// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/scheduler"
)

// SchedulerHandler exposes the background job registry.
type SchedulerHandler struct {
	registry *scheduler.Registry
	logger   *slog.Logger
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(registry *scheduler.Registry, logger *slog.Logger) *SchedulerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerHandler{registry: registry, logger: logger}
}

// List handles GET /api/v1/admin/jobs.
func (h *SchedulerHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, h.registry.List())
}

// TriggerNow handles POST /api/v1/admin/jobs/{name}/run.
func (h *SchedulerHandler) TriggerNow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.registry.TriggerNow(name); err != nil {
		h.writeJobError(w, name, "trigger", err)
		return
	}
	h.logger.Info("scheduler job triggered", "category", "scheduler", "name", name, "triggered_by", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSchedule handles PUT /api/v1/admin/jobs/{name} with {"schedule": "..."}.
func (h *SchedulerHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		Schedule string `json:"schedule"`
	}
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Schedule) == "" {
		middleware.WriteAPIError(w, http.StatusBadRequest, "validation_failed", "schedule is required",
			map[string]string{"schedule": "is required"})
		return
	}

	if err := h.registry.UpdateSchedule(name, strings.TrimSpace(req.Schedule)); err != nil {
		h.writeJobError(w, name, "update", err)
		return
	}
	h.logger.Info("scheduler job updated", "category", "scheduler", "name", name,
		"schedule", req.Schedule, "updated_by", middleware.GetUserID(r))
	writeData(w, http.StatusOK, h.registry.List())
}

// ResetSchedule handles DELETE /api/v1/admin/jobs/{name}/schedule.
func (h *SchedulerHandler) ResetSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.registry.ResetSchedule(name); err != nil {
		h.writeJobError(w, name, "reset", err)
		return
	}
	h.logger.Info("scheduler job reset", "category", "scheduler", "name", name, "reset_by", middleware.GetUserID(r))
	writeData(w, http.StatusOK, h.registry.List())
}

func (h *SchedulerHandler) writeJobError(w http.ResponseWriter, name, action string, err error) {
	if errors.Is(err, scheduler.ErrJobNotFound) {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Job not found", nil)
		return
	}
	h.logger.Error("scheduler job "+action+" failed", "category", "scheduler", "name", name, "error", err)
	middleware.WriteAPIError(w, http.StatusBadRequest, "job_error", err.Error(), nil)
}
