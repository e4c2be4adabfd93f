// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/assoc-site/internal/content"
	"github.com/olegiv/assoc-site/internal/markup"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/util"
)

// Public endpoints never fail: the content service falls back to built-in
// records, and meta.source tells the client which it got.

type aboutView struct {
	model.AboutContent
	BodyHTML string `json:"body_html,omitempty"`
}

type committeeView struct {
	model.LocalCommittee
	DescriptionHTML string `json:"description_html,omitempty"`
}

type eventView struct {
	model.EventItem
	DescriptionHTML string `json:"description_html,omitempty"`
}

// mapItems converts every item of a listing.
func mapItems[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// writeListing writes a list response.
func writeListing[T any](w http.ResponseWriter, l content.Listing[T]) {
	items := l.Items
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Source: l.Source})
}

// writeSingle writes the first item of a listing, or null.
func writeSingle[T any](w http.ResponseWriter, l content.Listing[T]) {
	var data any
	if len(l.Items) > 0 {
		data = l.Items[0]
	}
	WriteSuccess(w, data, &Meta{Source: l.Source})
}

// GetHero handles GET /api/v1/hero
func (h *Handler) GetHero(w http.ResponseWriter, r *http.Request) {
	writeSingle(w, h.content.GetActiveHero(r.Context()))
}

// GetAbout handles GET /api/v1/about
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	l := h.content.GetActiveAbout(r.Context())
	writeSingle(w, content.Listing[aboutView]{
		Items: mapItems(l.Items, func(a model.AboutContent) aboutView {
			return aboutView{AboutContent: a, BodyHTML: markup.Render(util.StringValue(a.Body))}
		}),
		Source: l.Source,
	})
}

// ListBoardMembers handles GET /api/v1/board-members
func (h *Handler) ListBoardMembers(w http.ResponseWriter, r *http.Request) {
	writeListing(w, h.content.GetActiveBoardMembers(r.Context()))
}

// ListCommittees handles GET /api/v1/committees
func (h *Handler) ListCommittees(w http.ResponseWriter, r *http.Request) {
	l := h.content.GetActiveLocalCommittees(r.Context())
	writeListing(w, content.Listing[committeeView]{
		Items: mapItems(l.Items, func(c model.LocalCommittee) committeeView {
			return committeeView{LocalCommittee: c, DescriptionHTML: markup.Render(util.StringValue(c.Description))}
		}),
		Source: l.Source,
	})
}

// ListMagazines handles GET /api/v1/magazines
func (h *Handler) ListMagazines(w http.ResponseWriter, r *http.Request) {
	writeListing(w, h.content.GetActiveMagazines(r.Context()))
}

// ListEvents handles GET /api/v1/events?when=upcoming|past
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	when := content.ParseWhen(r.URL.Query().Get("when"))
	l := h.content.GetActiveEvents(r.Context(), when)
	writeListing(w, content.Listing[eventView]{
		Items: mapItems(l.Items, func(e model.EventItem) eventView {
			return eventView{EventItem: e, DescriptionHTML: markup.Render(util.StringValue(e.Description))}
		}),
		Source: l.Source,
	})
}

// GetContact handles GET /api/v1/contact
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	writeSingle(w, h.content.GetActiveContact(r.Context()))
}

// GetSettings handles GET /api/v1/settings and returns a key/value object.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	values, src := h.content.SettingsMap(r.Context())
	WriteSuccess(w, values, &Meta{Source: src})
}

// MountPublic registers the public read routes.
func (h *Handler) MountPublic(r chi.Router) {
	r.Get("/hero", h.GetHero)
	r.Get("/about", h.GetAbout)
	r.Get("/board-members", h.ListBoardMembers)
	r.Get("/committees", h.ListCommittees)
	r.Get("/magazines", h.ListMagazines)
	r.Get("/events", h.ListEvents)
	r.Get("/contact", h.GetContact)
	r.Get("/settings", h.GetSettings)
}
