// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mtif implements a migrator source that imports Movable Type
// export files.
package mtif

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	mt "github.com/olegiv/ocms-mtif/internal/mtif"
	"github.com/olegiv/ocms-mtif/modules/migrator/types"
)

// Config keys understood by the source.
const (
	ConfigFilePath      = "file_path"
	ConfigDefaultAuthor = "default_author"
	ConfigTimezone      = "timezone"
	ConfigTranscode     = "transcode"
)

// DefaultAuthorLogin owns posts that have no AUTHOR line.
const DefaultAuthorLogin = "admin"

// ErrNoRecords is returned when an export contains no complete record.
var ErrNoRecords = errors.New("export contains no records")

// Source implements the migrator.Source interface for MTIF exports.
type Source struct{}

// NewSource creates a new MTIF source.
func NewSource() *Source {
	return &Source{}
}

// Name returns the unique identifier for this source.
func (s *Source) Name() string {
	return "mtif"
}

// DisplayName returns the human-readable name.
func (s *Source) DisplayName() string {
	return "Movable Type (MTIF)"
}

// Description returns a brief description of the source.
func (s *Source) Description() string {
	return "Import posts, authors, categories, tags and comments from a Movable Type export file"
}

// ConfigFields returns the configuration fields needed for this source.
// Defaults are read from environment variables (MTIF_FILE, MTIF_DEFAULT_AUTHOR, etc.)
func (s *Source) ConfigFields() []types.ConfigField {
	return []types.ConfigField{
		{Name: ConfigFilePath, Label: "Export File", Type: "path", Required: true, Default: os.Getenv("MTIF_FILE"), Placeholder: "/path/to/export.txt"},
		{Name: ConfigDefaultAuthor, Label: "Default Author", Type: "text", Default: envOrDefault("MTIF_DEFAULT_AUTHOR", DefaultAuthorLogin)},
		{Name: ConfigTimezone, Label: "Timezone", Type: "text", Default: envOrDefault("MTIF_TIMEZONE", "Local"), Placeholder: "e.g. Europe/Berlin"},
		{Name: ConfigTranscode, Label: "Decode non-UTF-8 input", Type: "bool", Default: envOrDefault("MTIF_TRANSCODE", "false")},
	}
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// TestConnection checks that the export can be opened and holds at least one
// record.
func (s *Source) TestConnection(cfg map[string]string) error {
	path := strings.TrimSpace(cfg[ConfigFilePath])
	if path == "" {
		return fmt.Errorf("%s is required", ConfigFilePath)
	}

	p := mt.NewParser(path, parserOptions(cfg)...)
	defer func() { _ = p.Close() }()
	if err := p.Err(); err != nil {
		return fmt.Errorf("opening export: %w", err)
	}

	if _, ok := p.NextBlock(); !ok {
		if err := p.Err(); err != nil {
			return fmt.Errorf("reading export: %w", err)
		}
		return ErrNoRecords
	}
	return nil
}

// parserOptions converts the source config into parser options.
func parserOptions(cfg map[string]string) []mt.Option {
	var opts []mt.Option
	if on, _ := strconv.ParseBool(strings.TrimSpace(cfg[ConfigTranscode])); on {
		opts = append(opts, mt.WithTranscoding())
	}
	return opts
}

// loadLocation resolves the timezone config. Empty means time.Local.
func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}
