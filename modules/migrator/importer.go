// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package migrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/olegiv/ocms-mtif/modules/migrator/types"
)

// Type aliases for convenience - allows using migrator.Source instead of types.Source
type (
	Source        = types.Source
	ConfigField   = types.ConfigField
	ImportOptions = types.ImportOptions
	ImportResult  = types.ImportResult
	ImportTracker = types.ImportTracker
)

// DefaultImportOptions returns options that import everything.
func DefaultImportOptions() ImportOptions {
	return types.DefaultImportOptions()
}

// ErrSourceNotFound is returned when no source is registered under a name.
var ErrSourceNotFound = errors.New("migration source not found")

// Source registry

var (
	sources   = make(map[string]Source)
	sourcesMu sync.RWMutex
)

// RegisterSource registers a source with the registry.
func RegisterSource(s Source) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	sources[s.Name()] = s
}

// GetSource returns a source by name.
func GetSource(name string) (Source, bool) {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	s, ok := sources[name]
	return s, ok
}

// ListSources returns all registered sources sorted by name.
func ListSources() []Source {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()

	result := make([]Source, 0, len(sources))
	for _, s := range sources {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})

	return result
}

// BuildConfig fills a source configuration from the field defaults, then
// applies overrides. Required fields that end up empty are reported.
func BuildConfig(s Source, overrides map[string]string) (map[string]string, error) {
	cfg := make(map[string]string)
	for _, field := range s.ConfigFields() {
		cfg[field.Name] = field.Default
	}
	for k, v := range overrides {
		if v != "" {
			cfg[k] = v
		}
	}

	var missing []string
	for _, field := range s.ConfigFields() {
		if field.Required && strings.TrimSpace(cfg[field.Name]) == "" {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
