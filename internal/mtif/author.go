// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

// Author is the author of a post. Movable Type exports only carry the login
// name; the other fields are filled by richer sources or by the importer.
type Author struct {
	ID          int64  // Destination user ID, 0 until imported
	Login       string // Login name, e.g. "jdoe"
	Email       string
	DisplayName string
	FirstName   string
	LastName    string
}

// NewAuthor returns an Author with the given login.
func NewAuthor(login string) Author {
	return Author{Login: login}
}

// String returns the login name.
func (a Author) String() string {
	return a.Login
}

// Name returns the best human-readable name for the author.
func (a Author) Name() string {
	switch {
	case a.DisplayName != "":
		return a.DisplayName
	case a.FirstName != "" || a.LastName != "":
		if a.FirstName != "" && a.LastName != "" {
			return a.FirstName + " " + a.LastName
		}
		return a.FirstName + a.LastName
	default:
		return a.Login
	}
}
