// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event log levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategoryStore   = "store"
	EventCategoryCache   = "cache"
	EventCategorySystem  = "system"
)

// EventLogTable is the table that receives persisted log records.
const EventLogTable = "event_log"

// LogEntry is a persisted log record. It is unrelated to EventItem, which is
// an association event shown on the site.
type LogEntry struct {
	ID        string `json:"id"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Metadata  string `json:"metadata"` // JSON object
	CreatedAt string `json:"created_at"`
}
