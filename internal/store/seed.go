// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-mtif/internal/auth"
	"github.com/olegiv/ocms-mtif/internal/model"
)

// SeedDefaultAuthor makes sure the account that owns posts without an AUTHOR
// line exists. It returns the existing or newly created user.
func SeedDefaultAuthor(ctx context.Context, db DBTX, login string) (User, error) {
	queries := New(db)

	user, err := queries.GetUserByLogin(ctx, login)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("checking for default author: %w", err)
	}

	passwordHash, err := auth.PlaceholderHash()
	if err != nil {
		return User{}, err
	}

	now := time.Now()
	user, err = queries.CreateUser(ctx, CreateUserParams{
		Login:        login,
		Name:         login,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, fmt.Errorf("creating default author: %w", err)
	}

	slog.Info("created default author", "id", user.ID, "login", user.Login, "category", model.EventCategoryStore)
	return user, nil
}
