// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/assoc-site/internal/model"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Callers must not reveal which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Users is the slice of the account store the authenticator needs.
type Users interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// Authenticator checks admin credentials.
type Authenticator struct {
	users    Users
	notFound func(error) bool
	logger   *slog.Logger

	// dummy is verified when the email is unknown so both failure paths
	// cost one argon2 derivation.
	dummy string
}

// NewAuthenticator creates an authenticator. notFound classifies the lookup
// errors that mean "no such user"; any other lookup error is returned as is.
func NewAuthenticator(users Users, notFound func(error) bool, logger *slog.Logger) (*Authenticator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dummy, err := HashPassword("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &Authenticator{users: users, notFound: notFound, logger: logger, dummy: dummy}, nil
}

// NormalizeEmail is the account key used for lookups and lockouts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate returns the user for email and password. Emails match
// case-insensitively.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if a.notFound != nil && a.notFound(err) {
			_, _ = CheckPassword(password, a.dummy)
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		a.logger.Error("stored password hash unreadable", "category", "auth", "user_id", user.ID, "error", err)
		return model.User{}, ErrInvalidCredentials
	}
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	if NeedsRehash(user.PasswordHash) {
		a.logger.Info("password hash uses outdated parameters", "category", "auth", "user_id", user.ID)
	}
	if err := a.users.UpdateLastLogin(ctx, user.ID); err != nil {
		a.logger.Warn("failed to record last login", "category", "auth", "user_id", user.ID, "error", err)
	}
	return user, nil
}
