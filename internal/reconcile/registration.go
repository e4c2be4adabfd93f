// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reconcile

import (
	"strings"

	"github.com/olegiv/assoc-site/internal/store"
)

const mailtoPrefix = "mailto:"

// RegistrationKind tells how people sign up for an event.
type RegistrationKind uint8

const (
	RegistrationNone RegistrationKind = iota
	RegistrationLink
	RegistrationEmail
)

// Registration is either a sign-up link or a bare email address.
type Registration struct {
	Kind  RegistrationKind
	Value string
}

// ParseRegistration classifies a registration value.
// "mailto:" (any case) and bare strings with "@" and no whitespace are
// emails; everything else, http(s) or not, is kept as a link.
func ParseRegistration(s string) Registration {
	s = strings.TrimSpace(s)
	if s == "" {
		return Registration{}
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, mailtoPrefix):
		email := strings.TrimSpace(s[len(mailtoPrefix):])
		if email == "" {
			return Registration{}
		}
		return Registration{Kind: RegistrationEmail, Value: email}
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return Registration{Kind: RegistrationLink, Value: s}
	case strings.Contains(s, "@") && !strings.ContainsAny(s, " \t\r\n"):
		return Registration{Kind: RegistrationEmail, Value: s}
	default:
		return Registration{Kind: RegistrationLink, Value: s}
	}
}

// ReadRegistration derives the registration from a stored row: the stored
// URL wins, else the stored contact email.
func ReadRegistration(row store.Row) Registration {
	if v := row.StringPtr(ColRegistrationURL); v != nil {
		return ParseRegistration(*v)
	}
	if v := row.StringPtr(ColContactEmail); v != nil {
		return Registration{Kind: RegistrationEmail, Value: strings.TrimPrefix(*v, mailtoPrefix)}
	}
	return Registration{}
}

// URL renders the registration as a link; emails get a mailto: prefix.
func (r Registration) URL() *string {
	var s string
	switch r.Kind {
	case RegistrationLink:
		s = r.Value
	case RegistrationEmail:
		s = mailtoPrefix + r.Value
	default:
		return nil
	}
	return &s
}

// Email returns the address for email registrations.
func (r Registration) Email() *string {
	if r.Kind != RegistrationEmail {
		return nil
	}
	s := r.Value
	return &s
}

// columns returns the stored pair: exactly one side is set.
func (r Registration) columns() (contactEmail, registrationURL any) {
	switch r.Kind {
	case RegistrationEmail:
		return r.Value, nil
	case RegistrationLink:
		return nil, r.Value
	default:
		return nil, nil
	}
}
