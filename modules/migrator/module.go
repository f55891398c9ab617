// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package migrator imports content from other blogging platforms into oCMS.
// It supports multiple source systems through a pluggable importer architecture.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/ocms-mtif/internal/model"
	"github.com/olegiv/ocms-mtif/internal/service"
	"github.com/olegiv/ocms-mtif/modules/migrator/sources/mtif"
)

// Module runs imports and deletions against one database.
type Module struct {
	db     *sql.DB
	logger *slog.Logger
	events *service.EventService
}

// New creates a migrator bound to db and registers the built-in sources.
func New(db *sql.DB, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Module{db: db, logger: logger, events: service.NewEventService(db)}
	m.registerSources()
	return m
}

func (m *Module) registerSources() {
	RegisterSource(mtif.NewSource())
}

// TestConnection checks the configuration of a source.
func (m *Module) TestConnection(sourceName string, cfg map[string]string) error {
	source, ok := GetSource(sourceName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, sourceName)
	}
	return source.TestConnection(cfg)
}

// Import runs a source and records every created row under a new batch.
func (m *Module) Import(ctx context.Context, sourceName string, cfg map[string]string, opts ImportOptions) (*ImportResult, error) {
	source, ok := GetSource(sourceName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceName)
	}

	tracker := NewTracker(m.db, m.logger)

	m.logger.Info("starting import",
		"source", sourceName,
		"batch", tracker.BatchID(),
		"import_authors", opts.ImportAuthors,
		"import_categories", opts.ImportCategories,
		"import_tags", opts.ImportTags,
		"import_comments", opts.ImportComments,
		"skip_existing", opts.SkipExisting,
		"dry_run", opts.DryRun,
	)

	// Run import (pass tracker for recording imported items)
	result, err := source.Import(ctx, m.db, cfg, opts, tracker)
	if result != nil && !opts.DryRun {
		result.BatchID = tracker.BatchID()
	}
	if err != nil {
		m.logger.Error("import failed", "source", sourceName, "error", err, "category", model.EventCategoryImport)
		return result, err
	}

	m.logger.Info("import completed",
		"source", sourceName,
		"batch", result.BatchID,
		"posts_imported", result.PostsImported,
		"comments_imported", result.CommentsImported,
		"categories_imported", result.CategoriesImported,
		"tags_imported", result.TagsImported,
		"users_imported", result.UsersImported,
		"posts_skipped", result.PostsSkipped,
		"skipped", result.TotalSkipped(),
		"errors", len(result.Errors),
	)

	// Log each error for debugging
	for i, errMsg := range result.Errors {
		m.logger.Error("import error", "source", sourceName, "index", i, "message", errMsg, "category", model.EventCategoryImport)
	}

	if !opts.DryRun {
		m.audit(ctx, "import completed", map[string]any{
			"source":   sourceName,
			"batch":    result.BatchID,
			"imported": result.TotalImported(),
			"skipped":  result.TotalSkipped(),
			"errors":   len(result.Errors),
		})
	}

	return result, nil
}

// ImportedCounts returns how many rows of each type a source has imported.
func (m *Module) ImportedCounts(ctx context.Context, sourceName string) (map[string]int, error) {
	return NewTracker(m.db, m.logger).ImportedCounts(ctx, sourceName)
}

// DeleteImported removes everything a source has imported.
func (m *Module) DeleteImported(ctx context.Context, sourceName string) (map[string]int, error) {
	deleted, err := NewTracker(m.db, m.logger).DeleteImported(ctx, sourceName)
	if err != nil {
		m.logger.Error("delete failed", "source", sourceName, "error", err, "category", model.EventCategoryImport)
		return deleted, err
	}

	m.logger.Info("deleted imported content",
		"source", sourceName,
		"posts", deleted[model.EntityPost],
		"comments", deleted[model.EntityComment],
		"categories", deleted[model.EntityCategory],
		"tags", deleted[model.EntityTag],
		"users", deleted[model.EntityUser],
	)
	m.audit(ctx, "imported content deleted", map[string]any{
		"source":  sourceName,
		"deleted": deleted,
	})
	return deleted, nil
}

// audit records an info event for a finished run. Info records are below the
// event log handler's threshold, so they are written here directly.
func (m *Module) audit(ctx context.Context, message string, metadata map[string]any) {
	if err := m.events.LogImportEvent(ctx, model.EventLevelInfo, message, metadata); err != nil {
		m.logger.Warn("failed to record import event", "error", err)
	}
}
