// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package fallback

import "github.com/olegiv/assoc-site/internal/model"

// Every function returns a fresh copy so callers may modify the result.

func meta(id string, active bool) model.Meta {
	return model.Meta{ID: model.FallbackIDPrefix + id, IsActive: active}
}

func s(v string) *string { return &v }

// Hero returns the default home banner.
func Hero() []model.HeroContent {
	return []model.HeroContent{{
		Meta:               meta("hero", true),
		Title:              "Students building Europe together",
		Subtitle:           s("A network of local committees connecting students across universities."),
		BackgroundImageURL: s("https://drive.google.com/file/d/1hEr0BaCkGr0uNdImAgE/view?usp=sharing"),
		CTALabel:           s("Join us"),
		CTAURL:             s("/join"),
	}}
}

// About returns the default about section.
func About() []model.AboutContent {
	return []model.AboutContent{{
		Meta:  meta("about", true),
		Title: "About the association",
		Body: s("We are a **non-profit student association** run entirely by volunteers.\n\n" +
			"Our local committees organise conferences, trainings and exchanges throughout the year."),
		ImageURL: s("https://drive.google.com/open?id=1aBoUtTeAmPh0t0"),
	}}
}

// BoardMembers returns the default board. The vacant seat is inactive and
// only visible to admin reads.
func BoardMembers() []model.BoardMember {
	return []model.BoardMember{
		{
			Meta:         meta("board-president", true),
			Name:         "Board President",
			Role:         "President",
			Bio:          s("Coordinates the national board and represents the association."),
			PhotoURL:     s("https://drive.google.com/file/d/1PrEsIdEnTpHoTo/view"),
			DisplayOrder: 1,
		},
		{
			Meta:         meta("board-secretary", true),
			Name:         "General Secretary",
			Role:         "Secretary General",
			Bio:          s("Keeps the association running between general assemblies."),
			PhotoURL:     s("/images/board/secretary.jpg"),
			DisplayOrder: 2,
		},
		{
			Meta:         meta("board-treasurer", true),
			Name:         "Treasurer",
			Role:         "Treasurer",
			Bio:          s("Manages the budget and the partnerships."),
			DisplayOrder: 3,
		},
		{
			Meta:         meta("board-vacant", false),
			Name:         "Open position",
			Role:         "Vice President",
			DisplayOrder: 4,
		},
	}
}

// LocalCommittees returns the default local committees.
func LocalCommittees() []model.LocalCommittee {
	return []model.LocalCommittee{
		{
			Meta:         meta("committee-capital", true),
			Name:         "LC Capital",
			University:   s("University of the Capital"),
			City:         s("Capital City"),
			Description:  s("Our founding committee and host of the annual **Summit**."),
			LogoURL:      s("https://drive.google.com/uc?export=download&id=1LcCaPiTaLlOgO"),
			InstagramURL: s("https://instagram.com/lc.capital"),
			DisplayOrder: 1,
		},
		{
			Meta:         meta("committee-coast", true),
			Name:         "LC Coast",
			University:   s("Coastal Technical University"),
			City:         s("Port Town"),
			Description:  s("Engineering students organising summer courses by the sea."),
			DisplayOrder: 2,
		},
	}
}

// Magazines returns the default magazine issues.
func Magazines() []model.MagazineArticle {
	return []model.MagazineArticle{{
		Meta:          meta("magazine-first-issue", true),
		Title:         "The first issue",
		Issue:         s("No. 1"),
		Summary:       s("Stories from our committees and the year ahead."),
		CoverImageURL: s("https://drive.google.com/file/d/1MaGaZiNeCoVeR/view"),
		PDFURL:        s("https://drive.google.com/file/d/1MaGaZiNePdF/view?usp=drive_link"),
		PublishedAt:   s("2024-09-01"),
		DisplayOrder:  1,
	}}
}

// Events returns the default events.
func Events() []model.EventItem {
	return []model.EventItem{
		{
			Meta:            meta("event-general-assembly", true),
			Title:           "General Assembly",
			Description:     s("The yearly meeting where members elect the new board."),
			Location:        s("Capital City"),
			EventDate:       s("2025-05-17"),
			RegistrationURL: s("mailto:board@example.org"),
			ContactEmail:    s("board@example.org"),
		},
		{
			Meta:            meta("event-welcome-week", true),
			Title:           "Welcome Week",
			Description:     s("A week of activities for new students in every committee."),
			ImageURL:        s("https://drive.google.com/thumbnail?ids=1WeLcOmEwEeK,1OtHeR&sz=w800"),
			EventDate:       s("2025-10-06"),
			RegistrationURL: s("https://example.org/welcome"),
		},
	}
}

// Contact returns the default contact details.
func Contact() []model.ContactInfo {
	return []model.ContactInfo{{
		Meta:         meta("contact", true),
		Email:        s("info@example.org"),
		Address:      s("Student House, Capital City"),
		InstagramURL: s("https://instagram.com/association"),
		LinkedInURL:  s("https://www.linkedin.com/company/association"),
	}}
}

// Settings returns the default site settings.
func Settings() []model.SiteSetting {
	return []model.SiteSetting{
		{Meta: meta("setting-site-name", true), Key: model.SettingSiteName, Value: s("Student Association")},
		{Meta: meta("setting-tagline", true), Key: model.SettingTagline, Value: s("Connecting students across universities")},
		{Meta: meta("setting-footer-text", true), Key: model.SettingFooterText, Value: s("Run by students, for students.")},
		{Meta: meta("setting-join-form-url", true), Key: model.SettingJoinFormURL, Value: s("https://docs.google.com/forms/d/e/join/viewform")},
	}
}
