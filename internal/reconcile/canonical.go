// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package reconcile maps stored event rows, whose column names vary between
// schema revisions, onto model.EventItem and back, and retries writes that a
// store rejects because of an unknown column.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/store"
	"github.com/olegiv/assoc-site/internal/util"
)

// Event columns.
const (
	ColEventDate       = "event_date"
	ColLegacyDate      = "date"
	ColRegistrationURL = "registration_url"
	ColContactEmail    = "contact_email"
	ColIsActive        = "is_active"
	ColUpdatedAt       = "updated_at"
)

// DateColumn names the column an event date was read from.
type DateColumn uint8

const (
	DateAbsent DateColumn = iota
	DateEventDate
	DateLegacy
)

// DateField is an event date together with the column that carried it.
type DateField struct {
	Column DateColumn
	Value  string
}

// ReadDate prefers event_date and falls back to the legacy date column.
func ReadDate(row store.Row) DateField {
	if v := row.StringPtr(ColEventDate); v != nil {
		return DateField{Column: DateEventDate, Value: *v}
	}
	if v := row.StringPtr(ColLegacyDate); v != nil {
		return DateField{Column: DateLegacy, Value: *v}
	}
	return DateField{}
}

// Ptr returns the date, or nil when no column carried one.
func (d DateField) Ptr() *string {
	if d.Column == DateAbsent {
		return nil
	}
	v := d.Value
	return &v
}

// CanonicalEvent builds an EventItem from a stored row of any schema revision.
func CanonicalEvent(row store.Row) model.EventItem {
	date := ReadDate(row)
	reg := ReadRegistration(row)

	contact := row.StringPtr(ColContactEmail)
	if contact == nil {
		contact = reg.Email()
	}

	title := row.String("title")
	return model.EventItem{
		Meta: model.Meta{
			ID:        eventID(row, title, date),
			IsActive:  row.Bool(ColIsActive, true),
			UserID:    row.StringPtr("user_id"),
			CreatedAt: row.StringPtr("created_at"),
			UpdatedAt: row.StringPtr(ColUpdatedAt),
		},
		Title:           title,
		Description:     row.StringPtr("description"),
		Location:        row.StringPtr("location"),
		ImageURL:        util.NormalizeDriveURLPtr(row.StringPtr("image_url")),
		EventDate:       date.Ptr(),
		RegistrationURL: reg.URL(),
		ContactEmail:    contact,
	}
}

// eventID returns the stored id, or a deterministic one derived from the
// title and the date (or creation time) for rows without a key.
func eventID(row store.Row, title string, date DateField) string {
	switch id := row["id"].(type) {
	case string:
		if s := strings.TrimSpace(id); s != "" {
			return s
		}
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}

	parts := []string{"event"}
	if s := util.Slugify(title); s != "" {
		parts = append(parts, s)
	}
	when := date.Value
	if when == "" {
		when = row.String("created_at")
	}
	if s := util.Slugify(when); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		parts = append(parts, "untitled")
	}
	return strings.Join(parts, "-")
}
