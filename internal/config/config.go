// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MaxWorkers caps the number of parse workers.
const MaxWorkers = 64

// Config holds the importer configuration loaded from environment variables.
type Config struct {
	DBPath   string `env:"MTIF_DB_PATH" envDefault:"./data/ocms.db"`
	Env      string `env:"MTIF_ENV" envDefault:"development"`
	LogLevel string `env:"MTIF_LOG_LEVEL" envDefault:"info"`

	// Import configuration
	Workers       int     `env:"MTIF_WORKERS" envDefault:"4"`            // Parallel record parsers
	Timezone      string  `env:"MTIF_TIMEZONE" envDefault:"Local"`       // Zone for dates without an offset
	DefaultAuthor string  `env:"MTIF_DEFAULT_AUTHOR" envDefault:"admin"` // Login for posts without AUTHOR
	Transcode     bool    `env:"MTIF_TRANSCODE" envDefault:"false"`      // Decode non-UTF-8 exports
	RateLimit     float64 `env:"MTIF_RATE_LIMIT" envDefault:"0"`         // Posts written per second, 0 = unlimited

	EventLog bool `env:"MTIF_EVENT_LOG" envDefault:"true"` // Persist WARN+ logs in the events table
}

// IsDevelopment returns true if the importer is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Location returns the configured time zone, falling back to time.Local.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the env tags cannot express.
func (c Config) Validate() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("MTIF_WORKERS must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("MTIF_LOG_LEVEL must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	if c.Timezone != "" && c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("MTIF_TIMEZONE %q: %w", c.Timezone, err)
		}
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("MTIF_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}

	if c.DefaultAuthor == "" {
		slog.Warn("MTIF_DEFAULT_AUTHOR is empty; posts without AUTHOR will fail to import")
	}
	return nil
}
