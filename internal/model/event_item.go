// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "github.com/olegiv/assoc-site/internal/sanitize"

// EventItem is the canonical in-memory shape of an association event,
// independent of which column names the backing table uses.
type EventItem struct {
	Meta
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url"`

	// EventDate is always exposed under this name, even when the row stored it
	// in the legacy "date" column.
	EventDate *string `json:"event_date"`

	// RegistrationURL is mailto:-prefixed when registration goes by email.
	RegistrationURL *string `json:"registration_url"`
	ContactEmail    *string `json:"contact_email"`
}

// EventInput is a sanitized event write. RegistrationURL accepts a link, a
// mailto: link or a bare email address.
type EventInput struct {
	Title           sanitize.Field[string]
	Description     sanitize.Field[string]
	Location        sanitize.Field[string]
	ImageURL        sanitize.Field[string]
	EventDate       sanitize.Field[string]
	RegistrationURL sanitize.Field[string]
	IsActive        sanitize.Field[bool]
}
