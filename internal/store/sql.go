// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SQLStore is a Store backed by database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// Table returns the verbs for the named table. The name is validated on use.
func (s *SQLStore) Table(name string) Table {
	return &sqlTable{s: s, name: name}
}

type sqlTable struct {
	s    *SQLStore
	name string
}

func (t *sqlTable) q(ident string) string {
	return t.s.dialect.quote(ident)
}

func (t *sqlTable) ph(n int) string {
	return t.s.dialect.placeholder(n)
}

func checkIdents(table string, columns []string) error {
	if !identPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	for _, c := range columns {
		if !identPattern.MatchString(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	return nil
}

func (t *sqlTable) SelectAll(ctx context.Context) ([]Row, error) {
	if err := checkIdents(t.name, nil); err != nil {
		return nil, wrapErr("select", t.name, err)
	}
	rows, err := t.query(ctx, "SELECT * FROM "+t.q(t.name))
	return rows, wrapErr("select", t.name, err)
}

func (t *sqlTable) SelectActive(ctx context.Context) ([]Row, error) {
	if err := checkIdents(t.name, nil); err != nil {
		return nil, wrapErr("select", t.name, err)
	}
	rows, err := t.query(ctx, "SELECT * FROM "+t.q(t.name)+" WHERE "+t.q("is_active")+" = TRUE")
	return rows, wrapErr("select", t.name, err)
}

func (t *sqlTable) SelectByID(ctx context.Context, id string) (Row, error) {
	row, err := t.selectWhere(ctx, "id", id)
	if err != nil {
		return nil, wrapErr("select", t.name, err)
	}
	return row, nil
}

// selectWhere returns the first row whose column equals value.
func (t *sqlTable) selectWhere(ctx context.Context, column string, value any) (Row, error) {
	if err := checkIdents(t.name, []string{column}); err != nil {
		return nil, err
	}
	query := "SELECT * FROM " + t.q(t.name) + " WHERE " + t.q(column) + " = " + t.ph(1)
	rows, err := t.query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (t *sqlTable) Insert(ctx context.Context, values Row) (Row, error) {
	values = values.Clone()
	if id, ok := values["id"]; !ok || id == nil || id == "" {
		values["id"] = uuid.NewString()
	}
	cols := values.Keys()
	if err := checkIdents(t.name, cols); err != nil {
		return nil, wrapErr("insert", t.name, err)
	}

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = t.q(c)
		marks[i] = t.ph(i + 1)
		args[i] = values[c]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.q(t.name), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	if _, err := t.s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, wrapErr("insert", t.name, err)
	}

	id := fmt.Sprint(values["id"])
	row, err := t.selectWhere(ctx, "id", id)
	if err != nil {
		return nil, wrapErr("insert", t.name, err)
	}
	return row, nil
}

func (t *sqlTable) UpdateByID(ctx context.Context, id string, values Row) (Row, error) {
	cols := values.Keys()
	if err := checkIdents(t.name, cols); err != nil {
		return nil, wrapErr("update", t.name, err)
	}

	if len(cols) > 0 {
		sets := make([]string, len(cols))
		args := make([]any, 0, len(cols)+1)
		for i, c := range cols {
			sets[i] = t.q(c) + " = " + t.ph(i+1)
			args = append(args, values[c])
		}
		args = append(args, id)
		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
			t.q(t.name), strings.Join(sets, ", "), t.q("id"), t.ph(len(cols)+1))
		if _, err := t.s.db.ExecContext(ctx, query, args...); err != nil {
			return nil, wrapErr("update", t.name, err)
		}
	}

	// MySQL reports zero affected rows for no-op updates, so existence is
	// checked by reading the row back.
	row, err := t.selectWhere(ctx, "id", id)
	if err != nil {
		return nil, wrapErr("update", t.name, err)
	}
	return row, nil
}

func (t *sqlTable) DeleteByID(ctx context.Context, id string) error {
	if err := checkIdents(t.name, nil); err != nil {
		return wrapErr("delete", t.name, err)
	}
	query := "DELETE FROM " + t.q(t.name) + " WHERE " + t.q("id") + " = " + t.ph(1)
	res, err := t.s.db.ExecContext(ctx, query, id)
	if err != nil {
		return wrapErr("delete", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete", t.name, err)
	}
	if n == 0 {
		return wrapErr("delete", t.name, ErrNotFound)
	}
	return nil
}

func (t *sqlTable) query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := t.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[strings.ToLower(c)] = decodeValue(strings.ToLower(c), vals[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeValue maps driver values onto the JSON-friendly types the rest of the
// application expects.
func decodeValue(column string, v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case int64:
		if strings.HasPrefix(column, "is_") {
			return x != 0
		}
		return x
	default:
		return v
	}
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
