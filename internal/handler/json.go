// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the session, health and maintenance endpoints.
// Content endpoints live in the api subpackage.
package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps v in the {"data": ...} envelope used by the API.
func writeData(w http.ResponseWriter, statusCode int, v any) {
	writeJSON(w, statusCode, map[string]any{"data": v})
}

// decodeJSON decodes a small JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	return dec.Decode(dst)
}
