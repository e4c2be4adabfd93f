// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"cmp"
	"strings"

	"github.com/olegiv/assoc-site/internal/fallback"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/reconcile"
	"github.com/olegiv/assoc-site/internal/sanitize"
	"github.com/olegiv/assoc-site/internal/store"
	"github.com/olegiv/assoc-site/internal/util"
)

func metaFromRow(r store.Row) model.Meta {
	return model.Meta{
		ID:        r.String("id"),
		IsActive:  r.Bool("is_active", true),
		UserID:    r.StringPtr("user_id"),
		CreatedAt: r.StringPtr("created_at"),
		UpdatedAt: r.StringPtr("updated_at"),
	}
}

func put[V any](p store.Row, column string, f sanitize.Field[V]) {
	if f.IsSet() {
		p[column] = f.Any()
	}
}

// requireSet rejects a missing required field on create and an explicit null
// on update.
func requireSet(errs *sanitize.Errors, key string, f sanitize.Field[string], create bool) {
	if create || f.IsNull() {
		errs.Require(key, f)
	}
}

func noValidation[In any](In, *sanitize.Errors, bool) {}

// newestFirst orders singleton records by last change.
func newestFirst(a, b model.Meta) int {
	return cmp.Compare(stamp(b), stamp(a))
}

func stamp(m model.Meta) string {
	if m.UpdatedAt != nil {
		return *m.UpdatedAt
	}
	return util.StringValue(m.CreatedAt)
}

func byOrder(ao, bo int, an, bn string) int {
	if c := cmp.Compare(ao, bo); c != 0 {
		return c
	}
	return cmp.Compare(strings.ToLower(an), strings.ToLower(bn))
}

var heroEntity = &entity[model.HeroContent, model.HeroInput]{
	table: store.TableHero,
	fromRow: func(r store.Row) model.HeroContent {
		return model.HeroContent{
			Meta:               metaFromRow(r),
			Title:              r.String("title"),
			Subtitle:           r.StringPtr("subtitle"),
			BackgroundImageURL: r.StringPtr("background_image_url"),
			CTALabel:           r.StringPtr("cta_label"),
			CTAURL:             r.StringPtr("cta_url"),
		}
	},
	fallback: fallback.Hero,
	meta:     func(h *model.HeroContent) *model.Meta { return &h.Meta },
	normalize: func(h *model.HeroContent) {
		h.BackgroundImageURL = util.NormalizeDriveURLPtr(h.BackgroundImageURL)
	},
	compare: func(a, b model.HeroContent) int { return newestFirst(a.Meta, b.Meta) },
	patch: func(in model.HeroInput) store.Row {
		p := store.Row{}
		put(p, "title", in.Title)
		put(p, "subtitle", in.Subtitle)
		put(p, "background_image_url", in.BackgroundImageURL)
		put(p, "cta_label", in.CTALabel)
		put(p, "cta_url", in.CTAURL)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.HeroInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "title", in.Title, create)
	},
	singleton: true,
}

var aboutEntity = &entity[model.AboutContent, model.AboutInput]{
	table: store.TableAbout,
	fromRow: func(r store.Row) model.AboutContent {
		return model.AboutContent{
			Meta:     metaFromRow(r),
			Title:    r.String("title"),
			Body:     r.StringPtr("body"),
			ImageURL: r.StringPtr("image_url"),
		}
	},
	fallback: fallback.About,
	meta:     func(a *model.AboutContent) *model.Meta { return &a.Meta },
	normalize: func(a *model.AboutContent) {
		a.ImageURL = util.NormalizeDriveURLPtr(a.ImageURL)
	},
	compare: func(a, b model.AboutContent) int { return newestFirst(a.Meta, b.Meta) },
	patch: func(in model.AboutInput) store.Row {
		p := store.Row{}
		put(p, "title", in.Title)
		put(p, "body", in.Body)
		put(p, "image_url", in.ImageURL)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.AboutInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "title", in.Title, create)
	},
	singleton: true,
}

var boardEntity = &entity[model.BoardMember, model.BoardMemberInput]{
	table: store.TableBoardMembers,
	fromRow: func(r store.Row) model.BoardMember {
		return model.BoardMember{
			Meta:         metaFromRow(r),
			Name:         r.String("name"),
			Role:         r.String("role"),
			Bio:          r.StringPtr("bio"),
			PhotoURL:     r.StringPtr("photo_url"),
			LinkedInURL:  r.StringPtr("linkedin_url"),
			Email:        r.StringPtr("email"),
			DisplayOrder: r.Int("display_order"),
		}
	},
	fallback: fallback.BoardMembers,
	meta:     func(b *model.BoardMember) *model.Meta { return &b.Meta },
	normalize: func(b *model.BoardMember) {
		b.PhotoURL = util.NormalizeDriveURLPtr(b.PhotoURL)
	},
	compare: func(a, b model.BoardMember) int {
		return byOrder(a.DisplayOrder, b.DisplayOrder, a.Name, b.Name)
	},
	patch: func(in model.BoardMemberInput) store.Row {
		p := store.Row{}
		put(p, "name", in.Name)
		put(p, "role", in.Role)
		put(p, "bio", in.Bio)
		put(p, "photo_url", in.PhotoURL)
		put(p, "linkedin_url", in.LinkedInURL)
		put(p, "email", in.Email)
		put(p, "display_order", in.DisplayOrder)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.BoardMemberInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "name", in.Name, create)
		requireSet(errs, "role", in.Role, create)
	},
}

var committeeEntity = &entity[model.LocalCommittee, model.LocalCommitteeInput]{
	table: store.TableLocalCommittees,
	fromRow: func(r store.Row) model.LocalCommittee {
		return model.LocalCommittee{
			Meta:         metaFromRow(r),
			Name:         r.String("name"),
			University:   r.StringPtr("university"),
			City:         r.StringPtr("city"),
			Description:  r.StringPtr("description"),
			LogoURL:      r.StringPtr("logo_url"),
			WebsiteURL:   r.StringPtr("website_url"),
			InstagramURL: r.StringPtr("instagram_url"),
			ContactEmail: r.StringPtr("contact_email"),
			DisplayOrder: r.Int("display_order"),
		}
	},
	fallback: fallback.LocalCommittees,
	meta:     func(c *model.LocalCommittee) *model.Meta { return &c.Meta },
	normalize: func(c *model.LocalCommittee) {
		c.LogoURL = util.NormalizeDriveURLPtr(c.LogoURL)
	},
	compare: func(a, b model.LocalCommittee) int {
		return byOrder(a.DisplayOrder, b.DisplayOrder, a.Name, b.Name)
	},
	patch: func(in model.LocalCommitteeInput) store.Row {
		p := store.Row{}
		put(p, "name", in.Name)
		put(p, "university", in.University)
		put(p, "city", in.City)
		put(p, "description", in.Description)
		put(p, "logo_url", in.LogoURL)
		put(p, "website_url", in.WebsiteURL)
		put(p, "instagram_url", in.InstagramURL)
		put(p, "contact_email", in.ContactEmail)
		put(p, "display_order", in.DisplayOrder)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.LocalCommitteeInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "name", in.Name, create)
	},
}

var magazineEntity = &entity[model.MagazineArticle, model.MagazineInput]{
	table: store.TableMagazines,
	fromRow: func(r store.Row) model.MagazineArticle {
		return model.MagazineArticle{
			Meta:          metaFromRow(r),
			Title:         r.String("title"),
			Issue:         r.StringPtr("issue"),
			Summary:       r.StringPtr("summary"),
			CoverImageURL: r.StringPtr("cover_image_url"),
			PDFURL:        r.StringPtr("pdf_url"),
			PublishedAt:   r.StringPtr("published_at"),
			DisplayOrder:  r.Int("display_order"),
		}
	},
	fallback: fallback.Magazines,
	meta:     func(m *model.MagazineArticle) *model.Meta { return &m.Meta },
	normalize: func(m *model.MagazineArticle) {
		m.CoverImageURL = util.NormalizeDriveURLPtr(m.CoverImageURL)
		m.DownloadURL = nil
		if m.PDFURL != nil {
			m.DownloadURL = util.DriveDownloadURL(*m.PDFURL)
		}
		m.PDFURL = util.NormalizeDriveURLPtr(m.PDFURL)
	},
	compare: func(a, b model.MagazineArticle) int {
		return byOrder(a.DisplayOrder, b.DisplayOrder, a.Title, b.Title)
	},
	patch: func(in model.MagazineInput) store.Row {
		p := store.Row{}
		put(p, "title", in.Title)
		put(p, "issue", in.Issue)
		put(p, "summary", in.Summary)
		put(p, "cover_image_url", in.CoverImageURL)
		put(p, "pdf_url", in.PDFURL)
		put(p, "published_at", in.PublishedAt)
		put(p, "display_order", in.DisplayOrder)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.MagazineInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "title", in.Title, create)
	},
}

var eventEntity = &entity[model.EventItem, model.EventInput]{
	table:    store.TableEvents,
	fromRow:  reconcile.CanonicalEvent,
	fallback: fallback.Events,
	meta:     func(e *model.EventItem) *model.Meta { return &e.Meta },
	normalize: func(e *model.EventItem) {
		e.ImageURL = util.NormalizeDriveURLPtr(e.ImageURL)
	},
	compare:  compareEventDates,
	patch:    reconcile.EventPatch,
	validate: func(in model.EventInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "title", in.Title, create)
	},
	drift: true,
}

// compareEventDates orders by date ascending with undated events last.
func compareEventDates(a, b model.EventItem) int {
	switch {
	case a.EventDate == nil && b.EventDate == nil:
		return 0
	case a.EventDate == nil:
		return 1
	case b.EventDate == nil:
		return -1
	}
	return cmp.Compare(*a.EventDate, *b.EventDate)
}

var contactEntity = &entity[model.ContactInfo, model.ContactInput]{
	table: store.TableContact,
	fromRow: func(r store.Row) model.ContactInfo {
		return model.ContactInfo{
			Meta:         metaFromRow(r),
			Email:        r.StringPtr("email"),
			Phone:        r.StringPtr("phone"),
			Address:      r.StringPtr("address"),
			InstagramURL: r.StringPtr("instagram_url"),
			LinkedInURL:  r.StringPtr("linkedin_url"),
			FacebookURL:  r.StringPtr("facebook_url"),
		}
	},
	fallback: fallback.Contact,
	meta:     func(c *model.ContactInfo) *model.Meta { return &c.Meta },
	compare:  func(a, b model.ContactInfo) int { return newestFirst(a.Meta, b.Meta) },
	patch: func(in model.ContactInput) store.Row {
		p := store.Row{}
		put(p, "email", in.Email)
		put(p, "phone", in.Phone)
		put(p, "address", in.Address)
		put(p, "instagram_url", in.InstagramURL)
		put(p, "linkedin_url", in.LinkedInURL)
		put(p, "facebook_url", in.FacebookURL)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate:  noValidation[model.ContactInput],
	singleton: true,
}

var settingEntity = &entity[model.SiteSetting, model.SettingInput]{
	table: store.TableSettings,
	fromRow: func(r store.Row) model.SiteSetting {
		return model.SiteSetting{
			Meta:  metaFromRow(r),
			Key:   r.String("key"),
			Value: r.StringPtr("value"),
		}
	},
	fallback: fallback.Settings,
	meta:     func(s *model.SiteSetting) *model.Meta { return &s.Meta },
	compare:  func(a, b model.SiteSetting) int { return cmp.Compare(a.Key, b.Key) },
	patch: func(in model.SettingInput) store.Row {
		p := store.Row{}
		put(p, "key", in.Key)
		put(p, "value", in.Value)
		put(p, "is_active", in.IsActive)
		return p
	},
	validate: func(in model.SettingInput, errs *sanitize.Errors, create bool) {
		requireSet(errs, "key", in.Key, create)
	},
}
