// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/sanitize"
)

// Request bodies are decoded into maps first so that an absent key, an
// explicit null and a value stay distinguishable.

func isActive(body map[string]any, errs *sanitize.Errors) sanitize.Field[bool] {
	f, err := sanitize.BoolField(body, "is_active")
	errs.Add(err)
	return f
}

func decodeHero(body map[string]any) (model.HeroInput, error) {
	var errs sanitize.Errors
	in := model.HeroInput{
		Title:              sanitize.TextField(body, "title"),
		Subtitle:           sanitize.TextField(body, "subtitle"),
		BackgroundImageURL: sanitize.TextField(body, "background_image_url"),
		CTALabel:           sanitize.TextField(body, "cta_label"),
		CTAURL:             sanitize.TextField(body, "cta_url"),
		IsActive:           isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeAbout(body map[string]any) (model.AboutInput, error) {
	var errs sanitize.Errors
	in := model.AboutInput{
		Title:    sanitize.TextField(body, "title"),
		Body:     sanitize.TextField(body, "body"),
		ImageURL: sanitize.TextField(body, "image_url"),
		IsActive: isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeBoardMember(body map[string]any) (model.BoardMemberInput, error) {
	var errs sanitize.Errors
	in := model.BoardMemberInput{
		Name:         sanitize.TextField(body, "name"),
		Role:         sanitize.TextField(body, "role"),
		Bio:          sanitize.TextField(body, "bio"),
		PhotoURL:     sanitize.TextField(body, "photo_url"),
		LinkedInURL:  sanitize.TextField(body, "linkedin_url"),
		Email:        sanitize.TextField(body, "email"),
		DisplayOrder: sanitize.IntField(body, "display_order", 0),
		IsActive:     isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeLocalCommittee(body map[string]any) (model.LocalCommitteeInput, error) {
	var errs sanitize.Errors
	in := model.LocalCommitteeInput{
		Name:         sanitize.TextField(body, "name"),
		University:   sanitize.TextField(body, "university"),
		City:         sanitize.TextField(body, "city"),
		Description:  sanitize.TextField(body, "description"),
		LogoURL:      sanitize.TextField(body, "logo_url"),
		WebsiteURL:   sanitize.TextField(body, "website_url"),
		InstagramURL: sanitize.TextField(body, "instagram_url"),
		ContactEmail: sanitize.TextField(body, "contact_email"),
		DisplayOrder: sanitize.IntField(body, "display_order", 0),
		IsActive:     isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeMagazine(body map[string]any) (model.MagazineInput, error) {
	var errs sanitize.Errors
	in := model.MagazineInput{
		Title:         sanitize.TextField(body, "title"),
		Issue:         sanitize.TextField(body, "issue"),
		Summary:       sanitize.TextField(body, "summary"),
		CoverImageURL: sanitize.TextField(body, "cover_image_url"),
		PDFURL:        sanitize.TextField(body, "pdf_url"),
		PublishedAt:   sanitize.TextField(body, "published_at"),
		DisplayOrder:  sanitize.IntField(body, "display_order", 0),
		IsActive:      isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeEvent(body map[string]any) (model.EventInput, error) {
	var errs sanitize.Errors
	date := sanitize.TextField(body, "event_date")
	if date.IsOmitted() {
		// legacy clients send "date"
		date = sanitize.TextField(body, "date")
	}
	in := model.EventInput{
		Title:           sanitize.TextField(body, "title"),
		Description:     sanitize.TextField(body, "description"),
		Location:        sanitize.TextField(body, "location"),
		ImageURL:        sanitize.TextField(body, "image_url"),
		EventDate:       date,
		RegistrationURL: sanitize.TextField(body, "registration_url"),
		IsActive:        isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeContact(body map[string]any) (model.ContactInput, error) {
	var errs sanitize.Errors
	in := model.ContactInput{
		Email:        sanitize.TextField(body, "email"),
		Phone:        sanitize.TextField(body, "phone"),
		Address:      sanitize.TextField(body, "address"),
		InstagramURL: sanitize.TextField(body, "instagram_url"),
		LinkedInURL:  sanitize.TextField(body, "linkedin_url"),
		FacebookURL:  sanitize.TextField(body, "facebook_url"),
		IsActive:     isActive(body, &errs),
	}
	return in, errs.Err()
}

func decodeSetting(body map[string]any) (model.SettingInput, error) {
	var errs sanitize.Errors
	in := model.SettingInput{
		Key:      sanitize.TextField(body, "key"),
		Value:    sanitize.TextField(body, "value"),
		IsActive: isActive(body, &errs),
	}
	return in, errs.Err()
}
