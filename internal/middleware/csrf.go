// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"filippo.io/csrf/gorilla"

	"github.com/olegiv/assoc-site/internal/model"
)

// devAdminOrigins are the local admin front ends trusted in development.
var devAdminOrigins = []string{"localhost:8080", "127.0.0.1:8080", "localhost:5173"}

// CSRFConfig configures cross-site write protection for the admin API.
// filippo.io/csrf/gorilla decides from Fetch metadata and Origin headers,
// so admin clients need no token; safe methods always pass.
type CSRFConfig struct {
	// AuthKey is the 32-byte session secret.
	AuthKey []byte

	// TrustedOrigins are host:port values allowed to write cross-origin.
	TrustedOrigins []string

	// Logger receives rejected writes under the auth category.
	Logger *slog.Logger

	// ErrorHandler replaces the JSON 403 "csrf_failed" response.
	ErrorHandler http.Handler
}

// DefaultCSRFConfig trusts adminOrigins, plus the local front ends when
// isDev is set.
func DefaultCSRFConfig(authKey []byte, isDev bool, adminOrigins ...string) CSRFConfig {
	var origins []string
	if isDev {
		origins = append(origins, devAdminOrigins...)
	}
	for _, o := range adminOrigins {
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}
	return CSRFConfig{AuthKey: authKey, TrustedOrigins: origins}
}

// CSRF rejects cross-site writes to the routes it wraps.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	reject := cfg.ErrorHandler
	if reject == nil {
		reject = csrfRejection(cfg.Logger)
	}

	opts := []csrf.Option{csrf.ErrorHandler(reject)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfRejection(logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason := "unknown"
		if err := csrf.FailureReason(r); err != nil {
			reason = err.Error()
		}
		logger.Warn("cross-site admin write rejected",
			"category", model.EventCategoryAuth,
			"reason", reason,
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"user_id", GetUserID(r),
			"ip", GetClientIP(r),
		)
		WriteAPIError(w, http.StatusForbidden, "csrf_failed", "Cross-site request rejected", nil)
	})
}
