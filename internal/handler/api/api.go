// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API for public content and the admin console.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/assoc-site/internal/content"
	"github.com/olegiv/assoc-site/internal/fallback"
	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/sanitize"
)

// maxBodyBytes caps admin request bodies.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content *content.Service
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *content.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{content: svc, logger: logger}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta tells the client where the data came from and, for writes, which
// fields the store actually kept.
type Meta struct {
	Source    fallback.Source   `json:"source,omitempty"`
	Persisted []string          `json:"persisted_fields,omitempty"`
	Dropped   []string          `json:"dropped_fields,omitempty"`
	Renamed   map[string]string `json:"renamed_fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusCreated, Response{Data: data, Meta: meta})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request", message, details)
}

// writeMeta builds the meta block of a write response.
func writeMeta[T any](res content.WriteResult[T]) *Meta {
	return &Meta{
		Source:    fallback.SourceLive,
		Persisted: res.Persisted,
		Dropped:   res.Dropped,
		Renamed:   res.Renamed,
	}
}

// writeServiceError maps content errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *sanitize.Errors
	var serr *content.StoreError

	switch {
	case errors.Is(err, content.ErrNotConfigured):
		middleware.WriteAPIError(w, http.StatusServiceUnavailable, "not_configured",
			"Content storage is not configured", nil)
	case errors.Is(err, content.ErrUnauthenticated):
		middleware.WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
	case errors.As(err, &verr):
		middleware.WriteAPIError(w, http.StatusBadRequest, "validation_failed", "Validation failed", verr.Fields())
	case errors.Is(err, content.ErrFallbackRecord):
		middleware.WriteAPIError(w, http.StatusBadRequest, "fallback_record", err.Error(), nil)
	case errors.Is(err, content.ErrNotFound):
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Record not found", nil)
	case errors.As(err, &serr):
		middleware.WriteAPIError(w, http.StatusInternalServerError, "store_error", "Failed to save "+serr.Entity, nil)
	default:
		h.logger.Error("unexpected content error", "path", r.URL.Path, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}

// decodeObject reads a JSON object body. Numbers stay json.Number so that
// ordering integers survive without float rounding.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		WriteBadRequest(w, "Request body must be a JSON object", nil)
		return nil, false
	}
	return body, true
}
