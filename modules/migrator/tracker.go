// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package migrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ocms-mtif/internal/model"
	"github.com/olegiv/ocms-mtif/internal/store"
)

// Tracker records imported rows in import_items so an import can be undone.
// Every Tracker stamps its rows with its own batch ID.
type Tracker struct {
	queries *store.Queries
	batchID string
	logger  *slog.Logger
}

// NewTracker creates a tracker for a new import batch.
func NewTracker(db store.DBTX, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		queries: store.New(db),
		batchID: uuid.NewString(),
		logger:  logger,
	}
}

// BatchID returns the batch identifier stamped on tracked rows.
func (t *Tracker) BatchID() string {
	return t.batchID
}

// TrackImportedItem records an imported item for later deletion.
func (t *Tracker) TrackImportedItem(ctx context.Context, source, entityType string, entityID int64) error {
	return t.queries.TrackImportItem(ctx, store.TrackImportItemParams{
		BatchID:    t.batchID,
		Source:     source,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	})
}

// ImportedCounts returns counts of imported items by entity type for a source.
func (t *Tracker) ImportedCounts(ctx context.Context, source string) (map[string]int, error) {
	rows, err := t.queries.CountImportItems(ctx, source)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.EntityType] = int(row.Cnt)
	}
	return counts, nil
}

// deleteOrder lists entity types so that rows are removed before the rows
// they reference.
var deleteOrder = []string{
	model.EntityComment,
	model.EntityPost,
	model.EntityTag,
	model.EntityCategory,
	model.EntityUser,
}

// DeleteImported deletes all content imported from a source and clears its
// tracking rows. Rows that cannot be deleted are logged and skipped.
func (t *Tracker) DeleteImported(ctx context.Context, source string) (map[string]int, error) {
	deleted := make(map[string]int)

	for _, entityType := range deleteOrder {
		ids, err := t.queries.ListImportItems(ctx, store.ListImportItemsParams{
			Source:     source,
			EntityType: entityType,
		})
		if err != nil {
			return deleted, err
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return deleted, err
			}
			if err := t.deleteEntity(ctx, entityType, id); err != nil {
				t.logger.Warn("failed to delete imported item",
					"type", entityType, "id", id, "error", err, "category", model.EventCategoryImport)
				continue
			}
			deleted[entityType]++
		}
	}

	if err := t.queries.DeleteImportItems(ctx, source); err != nil {
		return deleted, err
	}

	return deleted, nil
}

func (t *Tracker) deleteEntity(ctx context.Context, entityType string, id int64) error {
	switch entityType {
	case model.EntityComment:
		return t.queries.DeleteComment(ctx, id)
	case model.EntityPost:
		// Clear post associations
		if err := t.queries.ClearPostTaxonomy(ctx, id); err != nil {
			return err
		}
		if err := t.queries.DeleteCommentsByPost(ctx, id); err != nil {
			return err
		}
		return t.queries.DeletePost(ctx, id)
	case model.EntityTag:
		return t.queries.DeleteTag(ctx, id)
	case model.EntityCategory:
		return t.queries.DeleteCategory(ctx, id)
	case model.EntityUser:
		return t.queries.DeleteUser(ctx, id)
	default:
		return nil
	}
}
