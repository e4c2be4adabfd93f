// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/assoc-site/internal/content"
	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/model"
)

// resource wires one content entity to the admin CRUD endpoints.
type resource[T, In any] struct {
	decode func(map[string]any) (In, error)
	list   func(ctx context.Context) content.Listing[T]
	create func(ctx context.Context, userID string, in In) (content.WriteResult[T], error)
	update func(ctx context.Context, userID, id string, in In) (content.WriteResult[T], error)
	remove func(ctx context.Context, userID, id string) error
	// save is set for singletons only.
	save func(ctx context.Context, userID string, in In) (content.WriteResult[T], error)
}

// mount registers:
//
//	GET    /       all records, including inactive and built-in ones
//	POST   /       create
//	PUT    /       save (singletons)
//	PUT    /{id}   update
//	PATCH  /{id}   update
//	DELETE /{id}   delete
func (res resource[T, In]) mount(r chi.Router, h *Handler) {
	r.With(middleware.RequireUser).Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, res.list(r.Context()))
	})

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeInput(h, w, r, res.decode)
		if !ok {
			return
		}
		result, err := res.create(r.Context(), middleware.GetUserID(r), in)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		WriteCreated(w, result.Record, writeMeta(result))
	})

	if res.save != nil {
		r.Put("/", func(w http.ResponseWriter, r *http.Request) {
			in, ok := decodeInput(h, w, r, res.decode)
			if !ok {
				return
			}
			result, err := res.save(r.Context(), middleware.GetUserID(r), in)
			if err != nil {
				h.writeServiceError(w, r, err)
				return
			}
			WriteSuccess(w, result.Record, writeMeta(result))
		})
	}

	updateHandler := func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeInput(h, w, r, res.decode)
		if !ok {
			return
		}
		result, err := res.update(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id"), in)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		WriteSuccess(w, result.Record, writeMeta(result))
	}
	r.Put("/{id}", updateHandler)
	r.Patch("/{id}", updateHandler)

	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := res.remove(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id")); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// decodeInput reads and sanitizes a write body. A missing store and then a
// missing user are reported before anything about the body.
func decodeInput[In any](h *Handler, w http.ResponseWriter, r *http.Request, decode func(map[string]any) (In, error)) (In, bool) {
	var zero In
	if !h.content.Configured() {
		h.writeServiceError(w, r, content.ErrNotConfigured)
		return zero, false
	}
	if middleware.GetUserID(r) == "" {
		h.writeServiceError(w, r, content.ErrUnauthenticated)
		return zero, false
	}

	body, ok := decodeObject(w, r)
	if !ok {
		return zero, false
	}
	in, err := decode(body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return zero, false
	}
	return in, true
}

// MountAdmin registers the admin CRUD routes. The caller applies identity
// loading and CSRF middleware. Writes do not require a user up front: the
// content service reports a missing store before a missing user.
func (h *Handler) MountAdmin(r chi.Router) {
	s := h.content

	mountAt(r, "/hero", h, resource[model.HeroContent, model.HeroInput]{
		decode: decodeHero, list: s.GetAllHero,
		create: s.CreateHero, update: s.UpdateHero, remove: s.DeleteHero, save: s.SaveHero,
	})
	mountAt(r, "/about", h, resource[model.AboutContent, model.AboutInput]{
		decode: decodeAbout, list: s.GetAllAbout,
		create: s.CreateAbout, update: s.UpdateAbout, remove: s.DeleteAbout, save: s.SaveAbout,
	})
	mountAt(r, "/board-members", h, resource[model.BoardMember, model.BoardMemberInput]{
		decode: decodeBoardMember, list: s.GetAllBoardMembers,
		create: s.CreateBoardMember, update: s.UpdateBoardMember, remove: s.DeleteBoardMember,
	})
	mountAt(r, "/committees", h, resource[model.LocalCommittee, model.LocalCommitteeInput]{
		decode: decodeLocalCommittee, list: s.GetAllLocalCommittees,
		create: s.CreateLocalCommittee, update: s.UpdateLocalCommittee, remove: s.DeleteLocalCommittee,
	})
	mountAt(r, "/magazines", h, resource[model.MagazineArticle, model.MagazineInput]{
		decode: decodeMagazine, list: s.GetAllMagazines,
		create: s.CreateMagazine, update: s.UpdateMagazine, remove: s.DeleteMagazine,
	})
	mountAt(r, "/events", h, resource[model.EventItem, model.EventInput]{
		decode: decodeEvent, list: s.GetAllEvents,
		create: s.CreateEvent, update: s.UpdateEvent, remove: s.DeleteEvent,
	})
	mountAt(r, "/contact", h, resource[model.ContactInfo, model.ContactInput]{
		decode: decodeContact, list: s.GetAllContact,
		create: s.CreateContact, update: s.UpdateContact, remove: s.DeleteContact, save: s.SaveContact,
	})
	mountAt(r, "/settings", h, resource[model.SiteSetting, model.SettingInput]{
		decode: decodeSetting, list: s.GetAllSettings,
		create: s.CreateSetting, update: s.UpdateSetting, remove: s.DeleteSetting,
	})
}

func mountAt[T, In any](r chi.Router, pattern string, h *Handler, res resource[T, In]) {
	r.Route(pattern, func(r chi.Router) { res.mount(r, h) })
}
