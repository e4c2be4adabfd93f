// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/olegiv/assoc-site/internal/auth"
	"github.com/olegiv/assoc-site/internal/model"
)

const (
	// maxTrackedIPs bounds the per-IP limiter table between prunes.
	maxTrackedIPs = 10000
	pruneInterval = 10 * time.Minute
)

// LoginProtectionConfig configures admin login throttling.
type LoginProtectionConfig struct {
	// IPRateLimit is login requests per second per client IP.
	IPRateLimit float64
	IPBurst     int

	// MaxFailedAttempts within AttemptWindow locks the account.
	MaxFailedAttempts int
	AttemptWindow     time.Duration

	// LockoutDuration doubles with each repeated lockout up to MaxLockout.
	LockoutDuration time.Duration
	MaxLockout      time.Duration

	// Logger receives lockout and throttling events under the auth
	// category, so they land in event_log once the store is wired.
	Logger *slog.Logger

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// DefaultLoginProtectionConfig returns the production settings.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		AttemptWindow:     15 * time.Minute,
		LockoutDuration:   15 * time.Minute,
		MaxLockout:        24 * time.Hour,
	}
}

// LoginProtection throttles admin logins per client IP and locks accounts
// after repeated failures. Accounts are keyed by auth.NormalizeEmail, so
// case and surrounding whitespace cannot be used to dodge a lockout.
type LoginProtection struct {
	cfg    LoginProtectionConfig
	ips    *limiterCache[string]
	logger *slog.Logger

	mu        sync.Mutex
	accounts  map[string]*accountFailures
	lastPrune time.Time
}

type accountFailures struct {
	failures    int
	since       time.Time
	lockedUntil time.Time
	lockouts    int
}

// NewLoginProtection fills zero fields of cfg from the defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.MaxLockout < cfg.LockoutDuration {
		cfg.MaxLockout = max(def.MaxLockout, cfg.LockoutDuration)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LoginProtection{
		cfg:       cfg,
		ips:       newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		logger:    logger,
		accounts:  make(map[string]*accountFailures),
		lastPrune: cfg.Now(),
	}
}

// Locked reports whether the account is locked and for how much longer.
func (lp *LoginProtection) Locked(email string) (time.Duration, bool) {
	key := auth.NormalizeEmail(email)
	now := lp.cfg.Now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.accounts[key]
	if !ok || !now.Before(a.lockedUntil) {
		return 0, false
	}
	return a.lockedUntil.Sub(now), true
}

// Fail records a failed login from ip. When the failure locks the account it
// returns the lockout length and true.
func (lp *LoginProtection) Fail(email, ip string) (time.Duration, bool) {
	key := auth.NormalizeEmail(email)
	now := lp.cfg.Now()

	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.pruneLocked(now)

	a, ok := lp.accounts[key]
	if !ok {
		a = &accountFailures{since: now}
		lp.accounts[key] = a
	}
	if now.Sub(a.since) > lp.cfg.AttemptWindow {
		a.failures = 0
		a.since = now
	}
	a.failures++

	if a.failures < lp.cfg.MaxFailedAttempts {
		lp.logger.Debug("failed login counted", "category", model.EventCategoryAuth,
			"email", key, "failures", a.failures)
		return 0, false
	}

	d := lp.lockoutFor(a.lockouts)
	a.lockedUntil = now.Add(d)
	a.lockouts++
	a.failures = 0

	lp.logger.Warn("admin account locked",
		"category", model.EventCategoryAuth,
		"email", key,
		"ip", ip,
		"lockouts", a.lockouts,
		"duration", d.String(),
	)
	return d, true
}

// Succeed forgets the account's failures.
func (lp *LoginProtection) Succeed(email string) {
	lp.mu.Lock()
	delete(lp.accounts, auth.NormalizeEmail(email))
	lp.mu.Unlock()
}

// Remaining returns how many failures the account has left before a lockout.
func (lp *LoginProtection) Remaining(email string) int {
	key := auth.NormalizeEmail(email)
	now := lp.cfg.Now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.accounts[key]
	if !ok || now.Sub(a.since) > lp.cfg.AttemptWindow {
		return lp.cfg.MaxFailedAttempts
	}
	return max(lp.cfg.MaxFailedAttempts-a.failures, 0)
}

func (lp *LoginProtection) lockoutFor(previous int) time.Duration {
	d := lp.cfg.LockoutDuration
	for range previous {
		d *= 2
		if d >= lp.cfg.MaxLockout {
			return lp.cfg.MaxLockout
		}
	}
	return d
}

// pruneLocked drops expired account entries and oversized IP tables.
// lp.mu must be held.
func (lp *LoginProtection) pruneLocked(now time.Time) {
	if now.Sub(lp.lastPrune) < pruneInterval {
		return
	}
	lp.lastPrune = now

	for key, a := range lp.accounts {
		if !now.Before(a.lockedUntil) && now.Sub(a.since) > lp.cfg.AttemptWindow {
			delete(lp.accounts, key)
		}
	}
	if lp.ips.clearIfExceeds(maxTrackedIPs) {
		lp.logger.Info("login IP limiters reset", "category", model.EventCategoryAuth, "limit", maxTrackedIPs)
	}
}

// Middleware rate limits POST requests per client IP.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := GetClientIP(r)
			if !lp.ips.get(ip).Allow() {
				lp.logger.Warn("login rate limit exceeded", "category", model.EventCategoryAuth, "ip", ip)
				WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
					"Too many login attempts. Please wait a moment and try again.", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LockoutMessage describes a lockout for an API error body.
func LockoutMessage(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("Account locked. Try again in %d seconds.", int(d.Seconds()))
	}
	return fmt.Sprintf("Account locked. Try again in %d minutes.", int((d+time.Minute-1)/time.Minute))
}
