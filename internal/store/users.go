// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/assoc-site/internal/model"
)

// UserStore manages admin accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// CreateUserParams holds the fields for a new user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
}

// Users returns the account store sharing this database.
func (s *SQLStore) Users() UserStore {
	return &userTable{t: &sqlTable{s: s, name: TableUsers}}
}

type userTable struct {
	t *sqlTable
}

func (u *userTable) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row, err := u.t.selectWhere(ctx, "email", email)
	if err != nil {
		return model.User{}, wrapErr("select", TableUsers, err)
	}
	return userFromRow(row), nil
}

func (u *userTable) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row, err := u.t.selectWhere(ctx, "id", id)
	if err != nil {
		return model.User{}, wrapErr("select", TableUsers, err)
	}
	return userFromRow(row), nil
}

func (u *userTable) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row, err := u.t.Insert(ctx, Row{
		"id":            uuid.NewString(),
		"email":         arg.Email,
		"password_hash": arg.PasswordHash,
		"role":          arg.Role,
		"name":          arg.Name,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return model.User{}, err
	}
	return userFromRow(row), nil
}

func (u *userTable) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := u.t.UpdateByID(ctx, id, Row{"last_login_at": time.Now().UTC().Format(time.RFC3339)})
	return err
}

func userFromRow(row Row) model.User {
	str := func(k string) string {
		if v, ok := row[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}
	user := model.User{
		ID:           str("id"),
		Email:        str("email"),
		PasswordHash: str("password_hash"),
		Role:         str("role"),
		Name:         str("name"),
		CreatedAt:    str("created_at"),
		UpdatedAt:    str("updated_at"),
	}
	if s := str("last_login_at"); s != "" {
		user.LastLoginAt = &s
	}
	return user
}
