// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"slices"
	"time"

	"github.com/olegiv/assoc-site/internal/fallback"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/util"
)

// Hero

// GetActiveHero returns the active hero banners, newest first.
func (s *Service) GetActiveHero(ctx context.Context) Listing[model.HeroContent] {
	return readPublic(ctx, s, heroEntity)
}

// GetAllHero returns every hero banner, including inactive ones.
func (s *Service) GetAllHero(ctx context.Context) Listing[model.HeroContent] {
	return read(ctx, s, heroEntity, false)
}

func (s *Service) CreateHero(ctx context.Context, userID string, in model.HeroInput) (WriteResult[model.HeroContent], error) {
	return create(ctx, s, heroEntity, userID, in, false)
}

// UpdateHero updates a stored banner. Updating the built-in banner creates a
// stored one instead.
func (s *Service) UpdateHero(ctx context.Context, userID, id string, in model.HeroInput) (WriteResult[model.HeroContent], error) {
	return update(ctx, s, heroEntity, userID, id, in, false)
}

func (s *Service) DeleteHero(ctx context.Context, userID, id string) error {
	return remove(ctx, s, heroEntity, userID, id)
}

// SaveHero writes the user's banner and makes it the only active one they own.
func (s *Service) SaveHero(ctx context.Context, userID string, in model.HeroInput) (WriteResult[model.HeroContent], error) {
	return save(ctx, s, heroEntity, userID, in)
}

// About

func (s *Service) GetActiveAbout(ctx context.Context) Listing[model.AboutContent] {
	return readPublic(ctx, s, aboutEntity)
}

func (s *Service) GetAllAbout(ctx context.Context) Listing[model.AboutContent] {
	return read(ctx, s, aboutEntity, false)
}

func (s *Service) CreateAbout(ctx context.Context, userID string, in model.AboutInput) (WriteResult[model.AboutContent], error) {
	return create(ctx, s, aboutEntity, userID, in, false)
}

func (s *Service) UpdateAbout(ctx context.Context, userID, id string, in model.AboutInput) (WriteResult[model.AboutContent], error) {
	return update(ctx, s, aboutEntity, userID, id, in, false)
}

func (s *Service) DeleteAbout(ctx context.Context, userID, id string) error {
	return remove(ctx, s, aboutEntity, userID, id)
}

func (s *Service) SaveAbout(ctx context.Context, userID string, in model.AboutInput) (WriteResult[model.AboutContent], error) {
	return save(ctx, s, aboutEntity, userID, in)
}

// Board members

// GetActiveBoardMembers returns the active board ordered by display order.
func (s *Service) GetActiveBoardMembers(ctx context.Context) Listing[model.BoardMember] {
	return readPublic(ctx, s, boardEntity)
}

func (s *Service) GetAllBoardMembers(ctx context.Context) Listing[model.BoardMember] {
	return read(ctx, s, boardEntity, false)
}

func (s *Service) CreateBoardMember(ctx context.Context, userID string, in model.BoardMemberInput) (WriteResult[model.BoardMember], error) {
	return create(ctx, s, boardEntity, userID, in, false)
}

func (s *Service) UpdateBoardMember(ctx context.Context, userID, id string, in model.BoardMemberInput) (WriteResult[model.BoardMember], error) {
	return update(ctx, s, boardEntity, userID, id, in, false)
}

func (s *Service) DeleteBoardMember(ctx context.Context, userID, id string) error {
	return remove(ctx, s, boardEntity, userID, id)
}

// Local committees

func (s *Service) GetActiveLocalCommittees(ctx context.Context) Listing[model.LocalCommittee] {
	return readPublic(ctx, s, committeeEntity)
}

func (s *Service) GetAllLocalCommittees(ctx context.Context) Listing[model.LocalCommittee] {
	return read(ctx, s, committeeEntity, false)
}

func (s *Service) CreateLocalCommittee(ctx context.Context, userID string, in model.LocalCommitteeInput) (WriteResult[model.LocalCommittee], error) {
	return create(ctx, s, committeeEntity, userID, in, false)
}

func (s *Service) UpdateLocalCommittee(ctx context.Context, userID, id string, in model.LocalCommitteeInput) (WriteResult[model.LocalCommittee], error) {
	return update(ctx, s, committeeEntity, userID, id, in, false)
}

func (s *Service) DeleteLocalCommittee(ctx context.Context, userID, id string) error {
	return remove(ctx, s, committeeEntity, userID, id)
}

// Magazines

func (s *Service) GetActiveMagazines(ctx context.Context) Listing[model.MagazineArticle] {
	return readPublic(ctx, s, magazineEntity)
}

func (s *Service) GetAllMagazines(ctx context.Context) Listing[model.MagazineArticle] {
	return read(ctx, s, magazineEntity, false)
}

func (s *Service) CreateMagazine(ctx context.Context, userID string, in model.MagazineInput) (WriteResult[model.MagazineArticle], error) {
	return create(ctx, s, magazineEntity, userID, in, false)
}

func (s *Service) UpdateMagazine(ctx context.Context, userID, id string, in model.MagazineInput) (WriteResult[model.MagazineArticle], error) {
	return update(ctx, s, magazineEntity, userID, id, in, false)
}

func (s *Service) DeleteMagazine(ctx context.Context, userID, id string) error {
	return remove(ctx, s, magazineEntity, userID, id)
}

// Events

// When selects events relative to today.
type When string

const (
	WhenAll      When = ""
	WhenUpcoming When = "upcoming"
	WhenPast     When = "past"
)

// ParseWhen maps a query value onto a When. Unknown values select all events.
func ParseWhen(v string) When {
	switch When(v) {
	case WhenUpcoming, WhenPast:
		return When(v)
	}
	return WhenAll
}

// GetActiveEvents returns active events ordered by date, undated last.
// Upcoming keeps events dated today or later; past keeps earlier events,
// most recent first. Undated events are neither upcoming nor past.
func (s *Service) GetActiveEvents(ctx context.Context, when When) Listing[model.EventItem] {
	l := readPublic(ctx, s, eventEntity)
	l.Items = filterEvents(l.Items, when, s.now())
	return l
}

func (s *Service) GetAllEvents(ctx context.Context) Listing[model.EventItem] {
	return read(ctx, s, eventEntity, false)
}

// CreateEvent stores an event. Columns the events table lacks are dropped or
// renamed and reported in the result.
func (s *Service) CreateEvent(ctx context.Context, userID string, in model.EventInput) (WriteResult[model.EventItem], error) {
	return create(ctx, s, eventEntity, userID, in, false)
}

func (s *Service) UpdateEvent(ctx context.Context, userID, id string, in model.EventInput) (WriteResult[model.EventItem], error) {
	return update(ctx, s, eventEntity, userID, id, in, false)
}

func (s *Service) DeleteEvent(ctx context.Context, userID, id string) error {
	return remove(ctx, s, eventEntity, userID, id)
}

func filterEvents(items []model.EventItem, when When, now time.Time) []model.EventItem {
	if when == WhenAll {
		return items
	}
	today := now.UTC().Format(time.DateOnly)
	out := make([]model.EventItem, 0, len(items))
	for _, e := range items {
		if e.EventDate == nil {
			continue
		}
		day := *e.EventDate
		if len(day) > len(time.DateOnly) {
			day = day[:len(time.DateOnly)]
		}
		if (when == WhenUpcoming) == (day >= today) {
			out = append(out, e)
		}
	}
	if when == WhenPast {
		slices.Reverse(out)
	}
	return out
}

// Contact

func (s *Service) GetActiveContact(ctx context.Context) Listing[model.ContactInfo] {
	return readPublic(ctx, s, contactEntity)
}

func (s *Service) GetAllContact(ctx context.Context) Listing[model.ContactInfo] {
	return read(ctx, s, contactEntity, false)
}

func (s *Service) CreateContact(ctx context.Context, userID string, in model.ContactInput) (WriteResult[model.ContactInfo], error) {
	return create(ctx, s, contactEntity, userID, in, false)
}

func (s *Service) UpdateContact(ctx context.Context, userID, id string, in model.ContactInput) (WriteResult[model.ContactInfo], error) {
	return update(ctx, s, contactEntity, userID, id, in, false)
}

func (s *Service) DeleteContact(ctx context.Context, userID, id string) error {
	return remove(ctx, s, contactEntity, userID, id)
}

func (s *Service) SaveContact(ctx context.Context, userID string, in model.ContactInput) (WriteResult[model.ContactInfo], error) {
	return save(ctx, s, contactEntity, userID, in)
}

// Settings

func (s *Service) GetActiveSettings(ctx context.Context) Listing[model.SiteSetting] {
	return readPublic(ctx, s, settingEntity)
}

func (s *Service) GetAllSettings(ctx context.Context) Listing[model.SiteSetting] {
	return read(ctx, s, settingEntity, false)
}

func (s *Service) CreateSetting(ctx context.Context, userID string, in model.SettingInput) (WriteResult[model.SiteSetting], error) {
	return create(ctx, s, settingEntity, userID, in, false)
}

func (s *Service) UpdateSetting(ctx context.Context, userID, id string, in model.SettingInput) (WriteResult[model.SiteSetting], error) {
	return update(ctx, s, settingEntity, userID, id, in, false)
}

func (s *Service) DeleteSetting(ctx context.Context, userID, id string) error {
	return remove(ctx, s, settingEntity, userID, id)
}

// SettingsMap returns the active settings keyed by name and where they came
// from. Stored settings replace the built-in ones as a whole listing.
func (s *Service) SettingsMap(ctx context.Context) (map[string]string, fallback.Source) {
	l := s.GetActiveSettings(ctx)
	out := make(map[string]string, len(l.Items))
	for _, st := range l.Items {
		out[st.Key] = util.StringValue(st.Value)
	}
	return out, l.Source
}

// Warm loads every public listing, filling the cache.
func (s *Service) Warm(ctx context.Context) {
	s.GetActiveHero(ctx)
	s.GetActiveAbout(ctx)
	s.GetActiveBoardMembers(ctx)
	s.GetActiveLocalCommittees(ctx)
	s.GetActiveMagazines(ctx)
	s.GetActiveEvents(ctx, WhenAll)
	s.GetActiveContact(ctx)
	s.GetActiveSettings(ctx)
}
