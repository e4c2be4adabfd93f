// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/assoc-site/internal/auth"
	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/session"
)

// UserLookup loads an account by id.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	sessionManager  *scs.SessionManager
	authenticator   *auth.Authenticator
	users           UserLookup
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. A nil authenticator means no
// account store is configured and logins answer 503.
func NewAuthHandler(sm *scs.SessionManager, authn *auth.Authenticator, users UserLookup, lp *middleware.LoginProtection, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		sessionManager:  sm,
		authenticator:   authn,
		users:           users,
		loginProtection: lp,
		logger:          logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.authenticator == nil {
		middleware.WriteAPIError(w, http.StatusServiceUnavailable, "not_configured", "Account storage is not configured", nil)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}
	email := auth.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		middleware.WriteAPIError(w, http.StatusBadRequest, "validation_failed", "Email and password are required", nil)
		return
	}

	clientIP := middleware.GetClientIP(r)

	if h.loginProtection != nil {
		if remaining, locked := h.loginProtection.Locked(email); locked {
			h.logger.Warn("login attempt on locked account", "category", model.EventCategoryAuth, "email", email, "ip", clientIP)
			middleware.WriteAPIError(w, http.StatusTooManyRequests, "account_locked", middleware.LockoutMessage(remaining), nil)
			return
		}
	}

	user, err := h.authenticator.Authenticate(r.Context(), email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Warn("login failed", "category", model.EventCategoryAuth, "email", email, "ip", clientIP)
		// Unknown emails count too, so lockouts do not reveal which accounts exist
		if h.loginProtection != nil {
			if lockDuration, locked := h.loginProtection.Fail(email, clientIP); locked {
				middleware.WriteAPIError(w, http.StatusTooManyRequests, "account_locked", middleware.LockoutMessage(lockDuration), nil)
				return
			}
		}
		middleware.WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
		return
	}
	if err != nil {
		h.logger.Error("login lookup failed", "category", "auth", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Login is temporarily unavailable", nil)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.Succeed(email)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.Error("session renewal error", "category", "auth", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Could not start session", nil)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), session.KeyRole, user.Role)

	h.logger.Info("user logged in", "category", "auth", "user_id", user.ID, "ip", clientIP)
	writeData(w, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetString(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		h.logger.Error("session destroy error", "category", "auth", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Could not end session", nil)
		return
	}

	if userID != "" {
		h.logger.Info("user logged out", "category", "auth", "user_id", userID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me. It must run after RequireUser.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if h.users == nil {
		writeData(w, http.StatusOK, userResponse{ID: userID, Role: h.sessionManager.GetString(r.Context(), session.KeyRole)})
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		// The account was removed after login
		h.logger.Warn("session user not found", "category", "auth", "user_id", userID, "error", err)
		_ = h.sessionManager.Destroy(r.Context())
		middleware.WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
		return
	}
	writeData(w, http.StatusOK, toUserResponse(user))
}
