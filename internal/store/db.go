// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations
var migrations embed.FS

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// dialect captures what differs between the supported databases.
type dialect struct {
	name         string
	sqlDriver    string
	gooseDialect string
	quote        func(ident string) string
	placeholder  func(n int) string
}

func doubleQuote(ident string) string { return `"` + ident + `"` }
func backtick(ident string) string    { return "`" + ident + "`" }
func question(int) string             { return "?" }
func dollar(n int) string             { return "$" + strconv.Itoa(n) }

var dialects = map[string]dialect{
	DriverSQLite:   {name: DriverSQLite, sqlDriver: "sqlite", gooseDialect: "sqlite3", quote: doubleQuote, placeholder: question},
	DriverMySQL:    {name: DriverMySQL, sqlDriver: "mysql", gooseDialect: "mysql", quote: backtick, placeholder: question},
	DriverPostgres: {name: DriverPostgres, sqlDriver: "pgx", gooseDialect: "postgres", quote: doubleQuote, placeholder: dollar},
}

func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

// DBConfig holds database configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// sqlitePragmas tune SQLite for a read-heavy web workload.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
	"PRAGMA busy_timeout=5000",  // Wait 5s when database is locked
	"PRAGMA synchronous=NORMAL", // Good balance of safety and speed
	"PRAGMA cache_size=-64000",  // 64MB cache
	"PRAGMA foreign_keys=ON",    // Enforce foreign key constraints
	"PRAGMA temp_store=MEMORY",  // Store temp tables in memory
}

// Open connects to the database named by driver and dsn.
func Open(driver, dsn string) (*SQLStore, error) {
	return OpenWithConfig(driver, dsn, DefaultDBConfig())
}

// OpenWithConfig connects with a custom pool configuration.
func OpenWithConfig(driver, dsn string, cfg DBConfig) (*SQLStore, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if d.name == DriverSQLite {
		// every connection to :memory: is its own database
		if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &SQLStore{db: db, dialect: d}, nil
}

// New wraps an already opened database.
func New(db *sql.DB, driver string) (*SQLStore, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// Migrate runs all pending database migrations for the store's dialect.
func (s *SQLStore) Migrate() error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(s.dialect.gooseDialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations/"+s.dialect.name); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Ping verifies the connection is alive.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying database for session storage.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Driver returns the configured driver name.
func (s *SQLStore) Driver() string {
	return s.dialect.name
}
