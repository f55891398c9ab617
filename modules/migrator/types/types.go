// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package types defines shared types for the migrator module.
// This package is separate to avoid import cycles between migrator and source implementations.
package types

import (
	"context"
	"database/sql"
)

// ImportTracker tracks imported items for later deletion.
type ImportTracker interface {
	// TrackImportedItem records an imported item.
	TrackImportedItem(ctx context.Context, source, entityType string, entityID int64) error
}

// Source defines the interface that all migration sources must implement.
type Source interface {
	// Name returns the unique identifier for this source (e.g., "mtif").
	Name() string

	// DisplayName returns the human-readable name.
	DisplayName() string

	// Description returns a brief description of what this source imports.
	Description() string

	// ConfigFields returns the configuration fields needed for this source.
	ConfigFields() []ConfigField

	// TestConnection checks that the configured input can be read.
	TestConnection(cfg map[string]string) error

	// Import performs the actual import using the provided configuration and options.
	// The tracker can be used to record imported items for later deletion.
	Import(ctx context.Context, db *sql.DB, cfg map[string]string, opts ImportOptions, tracker ImportTracker) (*ImportResult, error)
}

// ConfigField represents a configuration field for a migration source.
type ConfigField struct {
	Name        string // Field name (config key)
	Label       string // Display label
	Type        string // Field type: "text", "path", "bool"
	Required    bool   // Whether the field is required
	Default     string // Default value
	Placeholder string // Placeholder text
}

// ImportOptions contains options for the import operation.
type ImportOptions struct {
	ImportAuthors    bool
	ImportCategories bool
	ImportTags       bool
	ImportComments   bool
	SkipExisting     bool
	DryRun           bool    // Count what would be imported without writing
	Workers          int     // Parallel parse workers; values below 1 mean the default
	RateLimit        float64 // Max posts written per second; 0 means unlimited
}

// DefaultImportOptions returns options that import everything.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ImportAuthors:    true,
		ImportCategories: true,
		ImportTags:       true,
		ImportComments:   true,
	}
}

// ImportResult contains the results of an import operation.
type ImportResult struct {
	PostsImported      int      `json:"posts_imported"`
	CommentsImported   int      `json:"comments_imported"`
	CategoriesImported int      `json:"categories_imported"`
	TagsImported       int      `json:"tags_imported"`
	UsersImported      int      `json:"users_imported"`
	PostsSkipped       int      `json:"posts_skipped"`
	CommentsSkipped    int      `json:"comments_skipped"`
	CategoriesSkipped  int      `json:"categories_skipped"`
	TagsSkipped        int      `json:"tags_skipped"`
	UsersSkipped       int      `json:"users_skipped"`
	Errors             []string `json:"errors,omitempty"`
	BatchID            string   `json:"batch_id,omitempty"`
}

// TotalImported returns the total number of items imported.
func (r *ImportResult) TotalImported() int {
	return r.PostsImported + r.CommentsImported + r.CategoriesImported + r.TagsImported + r.UsersImported
}

// TotalSkipped returns the total number of items skipped.
func (r *ImportResult) TotalSkipped() int {
	return r.PostsSkipped + r.CommentsSkipped + r.CategoriesSkipped + r.TagsSkipped + r.UsersSkipped
}

// HasErrors returns true if there were any errors during import.
func (r *ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}
