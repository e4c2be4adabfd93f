// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DBDriver is one of sqlite, mysql or postgres. An empty DBDSN leaves the
	// store unconfigured: reads serve built-in content and writes answer 503.
	DBDriver string `env:"ASSOC_DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"ASSOC_DB_DSN"`

	SessionSecret string `env:"ASSOC_SESSION_SECRET,required"`
	ServerHost    string `env:"ASSOC_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ASSOC_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ASSOC_ENV" envDefault:"development"`
	LogLevel      string `env:"ASSOC_LOG_LEVEL" envDefault:"info"`

	// Cache configuration. RedisURL is optional; without it the memory cache
	// is used. CacheTTL is in seconds.
	RedisURL     string `env:"ASSOC_REDIS_URL"`
	CachePrefix  string `env:"ASSOC_CACHE_PREFIX" envDefault:"assoc:"`
	CacheTTL     int    `env:"ASSOC_CACHE_TTL" envDefault:"300"`
	CacheMaxSize int    `env:"ASSOC_CACHE_MAX_SIZE" envDefault:"1000"`

	// CacheWarmSchedule is a cron expression; empty disables warming.
	CacheWarmSchedule string `env:"ASSOC_CACHE_WARM_SCHEDULE" envDefault:"*/10 * * * *"`

	// Login rate limiting, per client IP.
	LoginRatePerMinute int `env:"ASSOC_LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	// AdminOrigins are extra host or host:port origins allowed to send admin writes,
	// such as a separately served admin front end.
	AdminOrigins []string `env:"ASSOC_ADMIN_ORIGINS" envSeparator:","`

	// DoSeed creates the default admin user on startup.
	DoSeed bool `env:"ASSOC_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StoreConfigured reports whether a data store DSN is set.
func (c Config) StoreConfigured() bool {
	return strings.TrimSpace(c.DBDSN) != ""
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

var supportedDrivers = []string{"sqlite", "mysql", "postgres"}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ASSOC_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("ASSOC_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ASSOC_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if !slices.Contains(supportedDrivers, cfg.DBDriver) {
		return nil, fmt.Errorf("ASSOC_DB_DRIVER %q is not supported; use one of %s",
			cfg.DBDriver, strings.Join(supportedDrivers, ", "))
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("ASSOC_CACHE_TTL must be positive, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
