// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryAuth,
		EventCategoryContent,
		EventCategoryStore,
		EventCategoryCache,
		EventCategorySystem,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}

func TestIsFallbackID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"fallback-hero", true},
		{"fallback-", true},
		{"", false},
		{"3f2b1c9e-0000-4000-8000-000000000000", false},
		{"my-fallback-hero", false},
		{"Fallback-hero", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsFallbackID(tt.id); got != tt.want {
				t.Errorf("IsFallbackID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestMetaIsFallback(t *testing.T) {
	m := Meta{ID: FallbackIDPrefix + "board-1", IsActive: true}
	if !m.IsFallback() {
		t.Error("expected fallback meta")
	}
	m.ID = "abc"
	if m.IsFallback() {
		t.Error("expected live meta")
	}
}

func TestUserIsAdmin(t *testing.T) {
	u := User{Role: RoleAdmin}
	if !u.IsAdmin() {
		t.Error("expected admin")
	}
	u.Role = "editor"
	if u.IsAdmin() {
		t.Error("editor should not be admin")
	}
}
