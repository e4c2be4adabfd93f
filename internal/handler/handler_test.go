// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/assoc-site/internal/auth"
	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/store"
	"github.com/olegiv/assoc-site/internal/testutil"
)

type authFixture struct {
	router http.Handler
	cookie *http.Cookie
}

func newAuthFixture(t *testing.T, withStore bool) *authFixture {
	t.Helper()
	logger := testutil.TestLoggerSilent()

	sm := scs.New()
	sm.Store = memstore.New()

	var h *AuthHandler
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
	})
	if withStore {
		st := testutil.TestStore(t)
		users := st.Users()
		require.NoError(t, store.Seed(context.Background(), users))
		authn, err := auth.NewAuthenticator(users, store.IsNotFound, logger)
		require.NoError(t, err)
		h = NewAuthHandler(sm, authn, users, lp, logger)
	} else {
		h = NewAuthHandler(sm, nil, nil, lp, logger)
	}

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave, middleware.LoadIdentity(sm))
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(middleware.RequireUser).Get("/me", h.Me)

	return &authFixture{router: r}
}

func (f *authFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "198.51.100.9:4000"
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			f.cookie = c
		}
	}
	return rr
}

func TestLoginMeLogout(t *testing.T) {
	f := newAuthFixture(t, true)

	rr := f.do(t, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodPost, "/login",
		`{"email":" Admin@Example.com ","password":"`+store.DefaultAdminPassword+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), store.DefaultAdminEmail)
	assert.NotContains(t, rr.Body.String(), "argon2")
	require.NotNil(t, f.cookie)

	rr = f.do(t, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"role":"admin"`)

	rr = f.do(t, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = f.do(t, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t, true)

	rr := f.do(t, http.MethodPost, "/login", `{"email":"admin@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_credentials")

	rr = f.do(t, http.MethodPost, "/login", `{"email":"ghost@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_credentials")

	rr = f.do(t, http.MethodPost, "/login", `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginLocksAccount(t *testing.T) {
	f := newAuthFixture(t, true)

	// Case and padding variants share one counter
	var last *httptest.ResponseRecorder
	for _, email := range []string{"admin@example.com", "ADMIN@example.com", " Admin@Example.com "} {
		last = f.do(t, http.MethodPost, "/login", `{"email":"`+email+`","password":"wrong"}`)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "account_locked")

	// Correct password is refused while locked
	rr := f.do(t, http.MethodPost, "/login",
		`{"email":"admin@example.com","password":"`+store.DefaultAdminPassword+`"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestLoginWithoutStore(t *testing.T) {
	f := newAuthFixture(t, false)

	rr := f.do(t, http.MethodPost, "/login", `{"email":"admin@example.com","password":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_configured")
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	backend := func() string { return "memory" }

	tests := []struct {
		name       string
		db         Pinger
		user       string
		wantCode   int
		wantStatus string
		wantChecks bool
	}{
		{"unconfigured", nil, "", http.StatusOK, `"status":"healthy"`, false},
		{"reachable", fakePinger{}, "", http.StatusOK, `"status":"healthy"`, false},
		{"unreachable", fakePinger{err: errors.New("down")}, "", http.StatusServiceUnavailable, `"status":"degraded"`, false},
		{"details for users", fakePinger{}, "u1", http.StatusOK, `"status":"healthy"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, backend)
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.user != "" {
				req = req.WithContext(middleware.WithUserID(req.Context(), tt.user))
			}
			rr := httptest.NewRecorder()
			h.Health(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantStatus)
			if tt.wantChecks {
				assert.Contains(t, rr.Body.String(), `"message":"memory"`)
			} else {
				assert.NotContains(t, rr.Body.String(), "checks")
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("down")}, nil).Readiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	NewHealthHandler(nil, nil).Readiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewHealthHandler(nil, nil).Liveness(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Contains(t, rr.Body.String(), "alive")
}
