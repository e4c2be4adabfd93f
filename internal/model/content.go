// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content records served by the site: hero banner,
// about text, board members, local committees, magazine issues, events,
// contact details and site settings.
package model

import (
	"strings"

	"github.com/olegiv/assoc-site/internal/sanitize"
)

// FallbackIDPrefix marks built-in records that were never persisted.
const FallbackIDPrefix = "fallback-"

// IsFallbackID reports whether id belongs to a synthetic fallback record.
func IsFallbackID(id string) bool {
	return strings.HasPrefix(id, FallbackIDPrefix)
}

// Meta holds the attributes every record shares.
type Meta struct {
	ID        string  `json:"id"`
	IsActive  bool    `json:"is_active"`
	UserID    *string `json:"user_id"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// IsFallback reports whether the record is built-in fallback content.
func (m Meta) IsFallback() bool {
	return IsFallbackID(m.ID)
}

// HeroContent is the home page banner.
type HeroContent struct {
	Meta
	Title              string  `json:"title"`
	Subtitle           *string `json:"subtitle"`
	BackgroundImageURL *string `json:"background_image_url"`
	CTALabel           *string `json:"cta_label"`
	CTAURL             *string `json:"cta_url"`
}

// AboutContent is the "about us" section. Body is markdown.
type AboutContent struct {
	Meta
	Title    string  `json:"title"`
	Body     *string `json:"body"`
	ImageURL *string `json:"image_url"`
}

// BoardMember is a member of the national board.
type BoardMember struct {
	Meta
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
	LinkedInURL  *string `json:"linkedin_url"`
	Email        *string `json:"email"`
	DisplayOrder int     `json:"display_order"`
}

// LocalCommittee is a university chapter of the association.
type LocalCommittee struct {
	Meta
	Name         string  `json:"name"`
	University   *string `json:"university"`
	City         *string `json:"city"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
	WebsiteURL   *string `json:"website_url"`
	InstagramURL *string `json:"instagram_url"`
	ContactEmail *string `json:"contact_email"`
	DisplayOrder int     `json:"display_order"`
}

// MagazineArticle is one issue of the association magazine.
type MagazineArticle struct {
	Meta
	Title         string  `json:"title"`
	Issue         *string `json:"issue"`
	Summary       *string `json:"summary"`
	CoverImageURL *string `json:"cover_image_url"`
	PDFURL        *string `json:"pdf_url"`
	DownloadURL   *string `json:"download_url"` // derived from PDFURL, never stored
	PublishedAt   *string `json:"published_at"`
	DisplayOrder  int     `json:"display_order"`
}

// ContactInfo holds the public contact channels.
type ContactInfo struct {
	Meta
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	InstagramURL *string `json:"instagram_url"`
	LinkedInURL  *string `json:"linkedin_url"`
	FacebookURL  *string `json:"facebook_url"`
}

// SiteSetting is a key/value pair.
type SiteSetting struct {
	Meta
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// Well-known setting keys.
const (
	SettingSiteName    = "site_name"
	SettingTagline     = "tagline"
	SettingFooterText  = "footer_text"
	SettingJoinFormURL = "join_form_url"
)

// HeroInput is a sanitized hero write.
type HeroInput struct {
	Title              sanitize.Field[string]
	Subtitle           sanitize.Field[string]
	BackgroundImageURL sanitize.Field[string]
	CTALabel           sanitize.Field[string]
	CTAURL             sanitize.Field[string]
	IsActive           sanitize.Field[bool]
}

// AboutInput is a sanitized about write.
type AboutInput struct {
	Title    sanitize.Field[string]
	Body     sanitize.Field[string]
	ImageURL sanitize.Field[string]
	IsActive sanitize.Field[bool]
}

// BoardMemberInput is a sanitized board member write.
type BoardMemberInput struct {
	Name         sanitize.Field[string]
	Role         sanitize.Field[string]
	Bio          sanitize.Field[string]
	PhotoURL     sanitize.Field[string]
	LinkedInURL  sanitize.Field[string]
	Email        sanitize.Field[string]
	DisplayOrder sanitize.Field[int]
	IsActive     sanitize.Field[bool]
}

// LocalCommitteeInput is a sanitized local committee write.
type LocalCommitteeInput struct {
	Name         sanitize.Field[string]
	University   sanitize.Field[string]
	City         sanitize.Field[string]
	Description  sanitize.Field[string]
	LogoURL      sanitize.Field[string]
	WebsiteURL   sanitize.Field[string]
	InstagramURL sanitize.Field[string]
	ContactEmail sanitize.Field[string]
	DisplayOrder sanitize.Field[int]
	IsActive     sanitize.Field[bool]
}

// MagazineInput is a sanitized magazine write.
type MagazineInput struct {
	Title         sanitize.Field[string]
	Issue         sanitize.Field[string]
	Summary       sanitize.Field[string]
	CoverImageURL sanitize.Field[string]
	PDFURL        sanitize.Field[string]
	PublishedAt   sanitize.Field[string]
	DisplayOrder  sanitize.Field[int]
	IsActive      sanitize.Field[bool]
}

// ContactInput is a sanitized contact write.
type ContactInput struct {
	Email        sanitize.Field[string]
	Phone        sanitize.Field[string]
	Address      sanitize.Field[string]
	InstagramURL sanitize.Field[string]
	LinkedInURL  sanitize.Field[string]
	FacebookURL  sanitize.Field[string]
	IsActive     sanitize.Field[bool]
}

// SettingInput is a sanitized site setting write.
type SettingInput struct {
	Key      sanitize.Field[string]
	Value    sanitize.Field[string]
	IsActive sanitize.Field[bool]
}
