// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver for legacy-schema tests
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLStore {
	t.Helper()

	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate())
	return s
}

func TestSQLStore_CRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	members := s.Table(TableBoardMembers)

	created, err := members.Insert(ctx, Row{
		"name":          "Ada",
		"role":          "President",
		"display_order": 2,
		"is_active":     true,
	})
	require.NoError(t, err)
	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.Equal(t, "Ada", created["name"])
	assert.Equal(t, true, created["is_active"])
	assert.Equal(t, int64(2), created["display_order"])

	_, err = members.Insert(ctx, Row{"name": "Hidden", "is_active": false})
	require.NoError(t, err)

	all, err := members.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := members.SelectActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ada", active[0]["name"])

	updated, err := members.UpdateByID(ctx, id, Row{"role": "Treasurer", "bio": nil})
	require.NoError(t, err)
	assert.Equal(t, "Treasurer", updated["role"])
	assert.Nil(t, updated["bio"])

	got, err := members.SelectByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Treasurer", got["role"])

	require.NoError(t, members.DeleteByID(ctx, id))

	_, err = members.SelectByID(ctx, id)
	assert.True(t, IsNotFound(err))

	err = members.DeleteByID(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = members.UpdateByID(ctx, id, Row{"role": "Ghost"})
	assert.True(t, IsNotFound(err))
}

func TestSQLStore_InsertKeepsProvidedID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	row, err := s.Table(TableSettings).Insert(ctx, Row{"id": "custom-id", "key": "site_name", "value": "Assoc"})
	require.NoError(t, err)
	assert.Equal(t, "custom-id", row["id"])
	assert.Equal(t, "site_name", row["key"])
}

func TestSQLStore_RejectsInvalidIdentifiers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Table(TableEvents).Insert(ctx, Row{"title; DROP TABLE events": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid column name")

	_, err = s.Table("Events").SelectAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

func TestSQLStore_UnknownColumnMessageIsPreserved(t *testing.T) {
	// A hand-made events table from before event_date and registration_url
	// were introduced.
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "legacy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		date TEXT,
		contact_email TEXT,
		created_at TEXT
	)`)
	require.NoError(t, err)

	s, err := New(db, DriverSQLite)
	require.NoError(t, err)
	ctx := context.Background()
	events := s.Table(TableEvents)

	_, err = events.Insert(ctx, Row{"title": "Summit", "event_date": "2024-12-15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no column named event_date")

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "insert", storeErr.Op)
	assert.Equal(t, TableEvents, storeErr.Table)

	row, err := events.Insert(ctx, Row{"title": "Summit", "date": "2024-12-15"})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-15", row["date"])

	_, err = events.UpdateByID(ctx, row["id"].(string), Row{"registration_url": "https://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such column: registration_url")

	_, err = events.SelectActive(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such column")
}

func TestUsersAndSeed(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	users := s.Users()

	_, err := users.GetUserByEmail(ctx, DefaultAdminEmail)
	assert.True(t, IsNotFound(err))

	require.NoError(t, Seed(ctx, users))
	// second run is a no-op
	require.NoError(t, Seed(ctx, users))

	admin, err := users.GetUserByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminName, admin.Name)
	assert.True(t, admin.IsAdmin())
	assert.NotEmpty(t, admin.PasswordHash)
	assert.Nil(t, admin.LastLoginAt)

	require.NoError(t, users.UpdateLastLogin(ctx, admin.ID))

	byID, err := users.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, byID.Email)
	require.NotNil(t, byID.LastLoginAt)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDialects(t *testing.T) {
	pg, err := lookupDialect("Postgres")
	require.NoError(t, err)
	assert.Equal(t, "$3", pg.placeholder(3))
	assert.Equal(t, `"key"`, pg.quote("key"))
	assert.Equal(t, "pgx", pg.sqlDriver)

	my, err := lookupDialect(DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, "?", my.placeholder(3))
	assert.Equal(t, "`key`", my.quote("key"))
}

func TestDecodeValue(t *testing.T) {
	ts := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "abc", decodeValue("title", []byte("abc")))
	assert.Equal(t, "2024-12-15T10:00:00Z", decodeValue("created_at", ts))
	assert.Equal(t, true, decodeValue("is_active", int64(1)))
	assert.Equal(t, false, decodeValue("is_active", int64(0)))
	assert.Equal(t, int64(3), decodeValue("display_order", int64(3)))
	assert.Nil(t, decodeValue("bio", nil))
}

func TestRow(t *testing.T) {
	r := Row{"b": 1, "a": nil}
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("c"))

	c := r.Clone()
	c["c"] = 2
	assert.False(t, r.Has("c"))
}

func TestRowAccessors(t *testing.T) {
	r := Row{
		"title":     "  Summit ",
		"blank":     "   ",
		"number":    int64(7),
		"float":     float64(3),
		"text_num":  " 12 ",
		"is_active": false,
		"wrong":     42,
	}

	assert.Equal(t, "Summit", r.String("title"))
	assert.Nil(t, r.StringPtr("blank"))
	assert.Nil(t, r.StringPtr("missing"))
	assert.Nil(t, r.StringPtr("wrong"))

	assert.Equal(t, 7, r.Int("number"))
	assert.Equal(t, 3, r.Int("float"))
	assert.Equal(t, 12, r.Int("text_num"))
	assert.Equal(t, 0, r.Int("title"))

	assert.False(t, r.Bool("is_active", true))
	assert.True(t, r.Bool("missing", true))
	assert.True(t, r.Bool("wrong", true))
}
