// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createPost = `-- name: CreatePost :one
INSERT INTO posts (
    title, slug, body, excerpt, status, author_id, allow_comments, allow_pings,
    text_filter, post_type, menu_order, published_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, slug, body, excerpt, status, author_id, allow_comments, allow_pings, text_filter, post_type, menu_order, published_at, created_at, updated_at
`

type CreatePostParams struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Body          string       `json:"body"`
	Excerpt       string       `json:"excerpt"`
	Status        string       `json:"status"`
	AuthorID      int64        `json:"author_id"`
	AllowComments bool         `json:"allow_comments"`
	AllowPings    bool         `json:"allow_pings"`
	TextFilter    string       `json:"text_filter"`
	PostType      string       `json:"post_type"`
	MenuOrder     int64        `json:"menu_order"`
	PublishedAt   sql.NullTime `json:"published_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title,
		arg.Slug,
		arg.Body,
		arg.Excerpt,
		arg.Status,
		arg.AuthorID,
		arg.AllowComments,
		arg.AllowPings,
		arg.TextFilter,
		arg.PostType,
		arg.MenuOrder,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanPost(row)
}

const getPost = `-- name: GetPost :one
SELECT id, title, slug, body, excerpt, status, author_id, allow_comments, allow_pings, text_filter, post_type, menu_order, published_at, created_at, updated_at FROM posts
WHERE id = ?
`

func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPost, id))
}

const getPostBySlug = `-- name: GetPostBySlug :one
SELECT id, title, slug, body, excerpt, status, author_id, allow_comments, allow_pings, text_filter, post_type, menu_order, published_at, created_at, updated_at FROM posts
WHERE slug = ?
`

func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostBySlug, slug))
}

const countPosts = `-- name: CountPosts :one
SELECT COUNT(*) FROM posts
`

func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPosts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deletePost = `-- name: DeletePost :exec
DELETE FROM posts WHERE id = ?
`

func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

func scanPost(row *sql.Row) (Post, error) {
	var i Post
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Body,
		&i.Excerpt,
		&i.Status,
		&i.AuthorID,
		&i.AllowComments,
		&i.AllowPings,
		&i.TextFilter,
		&i.PostType,
		&i.MenuOrder,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
