// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const trackImportItem = `-- name: TrackImportItem :exec
INSERT INTO import_items (batch_id, source, entity_type, entity_id, created_at)
VALUES (?, ?, ?, ?, ?)
`

type TrackImportItemParams struct {
	BatchID    string    `json:"batch_id"`
	Source     string    `json:"source"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (q *Queries) TrackImportItem(ctx context.Context, arg TrackImportItemParams) error {
	_, err := q.db.ExecContext(ctx, trackImportItem,
		arg.BatchID,
		arg.Source,
		arg.EntityType,
		arg.EntityID,
		arg.CreatedAt,
	)
	return err
}

const listImportItems = `-- name: ListImportItems :many
SELECT entity_id FROM import_items
WHERE source = ? AND entity_type = ?
ORDER BY id
`

type ListImportItemsParams struct {
	Source     string `json:"source"`
	EntityType string `json:"entity_type"`
}

func (q *Queries) ListImportItems(ctx context.Context, arg ListImportItemsParams) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listImportItems, arg.Source, arg.EntityType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var entityID int64
		if err := rows.Scan(&entityID); err != nil {
			return nil, err
		}
		items = append(items, entityID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countImportItems = `-- name: CountImportItems :many
SELECT entity_type, COUNT(*) AS cnt FROM import_items
WHERE source = ?
GROUP BY entity_type
ORDER BY entity_type
`

type CountImportItemsRow struct {
	EntityType string `json:"entity_type"`
	Cnt        int64  `json:"cnt"`
}

func (q *Queries) CountImportItems(ctx context.Context, source string) ([]CountImportItemsRow, error) {
	rows, err := q.db.QueryContext(ctx, countImportItems, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountImportItemsRow
	for rows.Next() {
		var i CountImportItemsRow
		if err := rows.Scan(&i.EntityType, &i.Cnt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteImportItems = `-- name: DeleteImportItems :exec
DELETE FROM import_items WHERE source = ?
`

func (q *Queries) DeleteImportItems(ctx context.Context, source string) error {
	_, err := q.db.ExecContext(ctx, deleteImportItems, source)
	return err
}
