// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "ASSOC_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "sqlite")
	}
	if cfg.DBDSN != "" {
		t.Errorf("DBDSN = %q, want empty", cfg.DBDSN)
	}
	if cfg.StoreConfigured() {
		t.Error("StoreConfigured() = true, want false without a DSN")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.CachePrefix != "assoc:" {
		t.Errorf("CachePrefix = %q, want %q", cfg.CachePrefix, "assoc:")
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 5m", cfg.CacheTTLDuration())
	}
	if cfg.CacheWarmSchedule != "*/10 * * * *" {
		t.Errorf("CacheWarmSchedule = %q", cfg.CacheWarmSchedule)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "ASSOC_SESSION_SECRET", customSecret)
	setEnv(t, "ASSOC_DB_DRIVER", "Postgres")
	setEnv(t, "ASSOC_DB_DSN", "postgres://assoc@localhost/assoc")
	setEnv(t, "ASSOC_SERVER_HOST", "0.0.0.0")
	setEnv(t, "ASSOC_SERVER_PORT", "3000")
	setEnv(t, "ASSOC_ENV", "production")
	setEnv(t, "ASSOC_LOG_LEVEL", "debug")
	setEnv(t, "ASSOC_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "ASSOC_DO_SEED", "true")
	setEnv(t, "ASSOC_ADMIN_ORIGINS", "admin.assoc.example:443,localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "postgres")
	}
	if !cfg.StoreConfigured() {
		t.Error("StoreConfigured() = false, want true")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
	if len(cfg.AdminOrigins) != 2 || cfg.AdminOrigins[0] != "admin.assoc.example:443" {
		t.Errorf("AdminOrigins = %v", cfg.AdminOrigins)
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when ASSOC_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"}, // 31 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "ASSOC_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_WeakSecretRejected(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "ASSOC_SESSION_SECRET", weak)
		if _, err := Load(); err == nil {
			t.Errorf("Load() accepted known weak secret %q", weak)
		}
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ASSOC_SESSION_SECRET", testSecret)
	setEnv(t, "ASSOC_DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unsupported driver")
	}
}

func TestLoad_CacheTTLMustBePositive(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ASSOC_SESSION_SECRET", testSecret)
	setEnv(t, "ASSOC_CACHE_TTL", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a zero cache TTL")
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefghABCDEFGH1234567812345678", true},
		{"abcdefgh-ijklmnop-qrstuvwx-yz!!!", false},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
