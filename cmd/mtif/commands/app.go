// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-mtif/internal/config"
	"github.com/olegiv/ocms-mtif/internal/logging"
	"github.com/olegiv/ocms-mtif/internal/store"
)

// app holds what a command needs to talk to the destination database.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

// loadConfig reads the env file, then the environment, then applies
// command-line overrides.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		// Missing files are fine; the environment alone may be enough.
		_ = godotenv.Load(envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// newLogger builds the console logger. JSON output keeps stdout clean, so
// logs go to stderr.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(newTextHandler(cfg))
}

func newTextHandler(cfg *config.Config) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
}

// openApp loads configuration, opens and migrates the database and sets up
// logging.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	logger.Debug("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	logger.Debug("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Also write WARN and ERROR logs to the events table
	if cfg.EventLog {
		logger = slog.New(logging.NewEventLogHandler(newTextHandler(cfg), db))
		slog.SetDefault(logger)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database connection", "error", err)
	}
}
