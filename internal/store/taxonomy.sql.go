// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createCategory = `-- name: CreateCategory :one
INSERT INTO categories (name, slug, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id, name, slug, created_at, updated_at
`

type CreateCategoryParams struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory,
		arg.Name,
		arg.Slug,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Category
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCategoryBySlug = `-- name: GetCategoryBySlug :one
SELECT id, name, slug, created_at, updated_at FROM categories
WHERE slug = ?
`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategoryBySlug, slug)
	var i Category
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCategory = `-- name: DeleteCategory :exec
DELETE FROM categories WHERE id = ?
`

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCategory, id)
	return err
}

const addCategoryToPost = `-- name: AddCategoryToPost :exec
INSERT OR IGNORE INTO post_categories (post_id, category_id, is_primary)
VALUES (?, ?, ?)
`

type AddCategoryToPostParams struct {
	PostID     int64 `json:"post_id"`
	CategoryID int64 `json:"category_id"`
	IsPrimary  bool  `json:"is_primary"`
}

func (q *Queries) AddCategoryToPost(ctx context.Context, arg AddCategoryToPostParams) error {
	_, err := q.db.ExecContext(ctx, addCategoryToPost, arg.PostID, arg.CategoryID, arg.IsPrimary)
	return err
}

const listPostCategories = `-- name: ListPostCategories :many
SELECT c.id, c.name, c.slug, c.created_at, c.updated_at FROM categories c
INNER JOIN post_categories pc ON pc.category_id = c.id
WHERE pc.post_id = ?
ORDER BY pc.is_primary DESC, c.name
`

func (q *Queries) ListPostCategories(ctx context.Context, postID int64) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listPostCategories, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var i Category
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const createTag = `-- name: CreateTag :one
INSERT INTO tags (name, slug, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id, name, slug, created_at, updated_at
`

type CreateTagParams struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (Tag, error) {
	row := q.db.QueryRowContext(ctx, createTag,
		arg.Name,
		arg.Slug,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Tag
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTagBySlug = `-- name: GetTagBySlug :one
SELECT id, name, slug, created_at, updated_at FROM tags
WHERE slug = ?
`

func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (Tag, error) {
	row := q.db.QueryRowContext(ctx, getTagBySlug, slug)
	var i Tag
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteTag = `-- name: DeleteTag :exec
DELETE FROM tags WHERE id = ?
`

func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTag, id)
	return err
}

const addTagToPost = `-- name: AddTagToPost :exec
INSERT OR IGNORE INTO post_tags (post_id, tag_id)
VALUES (?, ?)
`

type AddTagToPostParams struct {
	PostID int64 `json:"post_id"`
	TagID  int64 `json:"tag_id"`
}

func (q *Queries) AddTagToPost(ctx context.Context, arg AddTagToPostParams) error {
	_, err := q.db.ExecContext(ctx, addTagToPost, arg.PostID, arg.TagID)
	return err
}

const listPostTags = `-- name: ListPostTags :many
SELECT t.id, t.name, t.slug, t.created_at, t.updated_at FROM tags t
INNER JOIN post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.name
`

func (q *Queries) ListPostTags(ctx context.Context, postID int64) ([]Tag, error) {
	rows, err := q.db.QueryContext(ctx, listPostTags, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tag
	for rows.Next() {
		var i Tag
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const clearPostCategories = `-- name: ClearPostCategories :exec
DELETE FROM post_categories WHERE post_id = ?
`

const clearPostTags = `-- name: ClearPostTags :exec
DELETE FROM post_tags WHERE post_id = ?
`

// ClearPostTaxonomy removes every category and tag association of a post.
func (q *Queries) ClearPostTaxonomy(ctx context.Context, postID int64) error {
	if _, err := q.db.ExecContext(ctx, clearPostCategories, postID); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx, clearPostTags, postID)
	return err
}
