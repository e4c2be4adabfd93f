// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package main is the entry point for the association site API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/assoc-site/internal/auth"
	"github.com/olegiv/assoc-site/internal/cache"
	"github.com/olegiv/assoc-site/internal/config"
	"github.com/olegiv/assoc-site/internal/content"
	"github.com/olegiv/assoc-site/internal/handler"
	"github.com/olegiv/assoc-site/internal/handler/api"
	"github.com/olegiv/assoc-site/internal/logging"
	"github.com/olegiv/assoc-site/internal/middleware"
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/scheduler"
	"github.com/olegiv/assoc-site/internal/session"
	"github.com/olegiv/assoc-site/internal/store"
	"github.com/olegiv/assoc-site/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "assoc-site - student association content API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_DB_DRIVER        sqlite|mysql|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_DB_DSN           Database DSN; empty serves built-in content only\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_ENV              development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ASSOC_REDIS_URL        Redis URL for the content cache (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Println("assoc-site", version.Get().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	// A nil interface, not a typed nil, marks the store as not configured.
	var contentStore store.Store
	sqlStore := openStore(cfg, logger)
	if sqlStore != nil {
		defer func() {
			if err := sqlStore.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()
		contentStore = sqlStore

		// WARN and ERROR records also go to the event log table
		logger = slog.New(logging.NewEventLogHandler(textHandler, contentStore))
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")

		if cfg.DoSeed {
			if err := store.Seed(context.Background(), sqlStore.Users()); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
		}
	}

	contentCache := cache.NewCache(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	svc := content.New(contentStore, logging.NewOnce(logger), content.Options{
		Cache:    contentCache,
		CacheTTL: cfg.CacheTTLDuration(),
		Logger:   logger,
	})
	slog.Info("content service ready", "configured", svc.Configured(), "cache", svc.Backend())

	return serve(cfg, logger, svc, sqlStore)
}

// openStore opens and migrates the configured database. It returns nil when
// no database is configured or when the database cannot be reached or
// migrated: the site then serves built-in content and refuses writes.
func openStore(cfg *config.Config, logger *slog.Logger) *store.SQLStore {
	if !cfg.StoreConfigured() {
		logger.Warn("no database configured, serving built-in content", "category", model.EventCategoryStore)
		return nil
	}

	logger.Info("opening database", "driver", cfg.DBDriver)
	sqlStore, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("database unavailable, serving built-in content",
			"category", model.EventCategoryStore,
			"driver", cfg.DBDriver,
			"error", err,
		)
		return nil
	}

	logger.Info("running database migrations")
	if err := sqlStore.Migrate(); err != nil {
		logger.Error("database migrations failed, serving built-in content",
			"category", model.EventCategoryStore,
			"driver", cfg.DBDriver,
			"error", err,
		)
		_ = sqlStore.Close()
		return nil
	}
	return sqlStore
}

// serve runs the HTTP server until a shutdown signal arrives.
// sqlStore is nil when no database is available.
func serve(cfg *config.Config, logger *slog.Logger, svc *content.Service, sqlStore *store.SQLStore) error {
	sched := scheduler.New(logger)
	if err := sched.AddCacheWarmer(cfg.CacheWarmSchedule, svc); err != nil {
		return fmt.Errorf("scheduling cache warmer: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r, err := newRouter(cfg, logger, svc, sqlStore, sched.Registry())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newRouter wires handlers and middleware. A nil sqlStore disables logins
// and persistent sessions.
func newRouter(cfg *config.Config, logger *slog.Logger, svc *content.Service, sqlStore *store.SQLStore, jobs *scheduler.Registry) (http.Handler, error) {
	var (
		sessionDB *sql.DB
		users     handler.UserLookup
		pinger    handler.Pinger
		authn     *auth.Authenticator
	)
	if sqlStore != nil {
		// scs keeps sessions in the database only for SQLite
		if sqlStore.Driver() == store.DriverSQLite {
			sessionDB = sqlStore.DB()
		}
		users = sqlStore.Users()
		pinger = sqlStore

		var err error
		authn, err = auth.NewAuthenticator(sqlStore.Users(), store.IsNotFound, logger)
		if err != nil {
			return nil, fmt.Errorf("creating authenticator: %w", err)
		}
	}

	sessionManager := session.New(sessionDB, cfg.IsDevelopment())
	logger.Info("session manager initialized", "persistent", sessionDB != nil)

	lpCfg := middleware.DefaultLoginProtectionConfig()
	if cfg.LoginRatePerMinute > 0 {
		lpCfg.IPRateLimit = float64(cfg.LoginRatePerMinute) / 60
	}
	lpCfg.Logger = logger
	loginProtection := middleware.NewLoginProtection(lpCfg)

	apiHandler := api.NewHandler(svc, logger)
	authHandler := handler.NewAuthHandler(sessionManager, authn, users, loginProtection, logger)
	healthHandler := handler.NewHealthHandler(pinger, svc.Backend)
	cacheHandler := handler.NewCacheHandler(svc, logger)
	jobsHandler := handler.NewSchedulerHandler(jobs, logger)

	csrfCfg := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.AdminOrigins...)
	csrfCfg.Logger = logger
	csrfMiddleware := middleware.CSRF(csrfCfg)
	globalLimiter := middleware.NewGlobalRateLimiter(20, 40)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(30*time.Second, logger))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(globalLimiter.Middleware())
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadIdentity(sessionManager))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.PublicCache(60))
			apiHandler.MountPublic(r)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.With(loginProtection.Middleware()).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(middleware.RequireUser).Get("/me", authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Use(middleware.NoStore)
			apiHandler.MountAdmin(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Post("/cache/clear", cacheHandler.Clear)
				r.Get("/jobs", jobsHandler.List)
				r.Post("/jobs/{name}/run", jobsHandler.TriggerNow)
				r.Put("/jobs/{name}", jobsHandler.UpdateSchedule)
				r.Delete("/jobs/{name}/schedule", jobsHandler.ResetSchedule)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Not found", nil)
	})

	return r, nil
}
