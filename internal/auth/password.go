// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing for accounts created by imports.
package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// placeholderPassword is never shown to anyone; imported accounts must reset
// their password before they can sign in.
const placeholderPassword = "imported-user-must-reset"

var (
	placeholderOnce sync.Once
	placeholderHash string
	placeholderErr  error
)

// PlaceholderHash returns a bcrypt hash shared by every imported account.
// The hash is computed once per process with bcrypt.MinCost.
func PlaceholderHash() (string, error) {
	placeholderOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.MinCost)
		if err != nil {
			placeholderErr = fmt.Errorf("generating placeholder password hash: %w", err)
			return
		}
		placeholderHash = string(hash)
	})
	return placeholderHash, placeholderErr
}

// HashPassword creates a bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
