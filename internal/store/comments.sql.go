// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createComment = `-- name: CreateComment :one
INSERT INTO comments (post_id, author_name, author_email, author_url, author_ip, body, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, post_id, author_name, author_email, author_url, author_ip, body, created_at
`

type CreateCommentParams struct {
	PostID      int64     `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	AuthorUrl   string    `json:"author_url"`
	AuthorIp    string    `json:"author_ip"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.PostID,
		arg.AuthorName,
		arg.AuthorEmail,
		arg.AuthorUrl,
		arg.AuthorIp,
		arg.Body,
		arg.CreatedAt,
	)
	var i Comment
	err := row.Scan(
		&i.ID,
		&i.PostID,
		&i.AuthorName,
		&i.AuthorEmail,
		&i.AuthorUrl,
		&i.AuthorIp,
		&i.Body,
		&i.CreatedAt,
	)
	return i, err
}

const listCommentsByPost = `-- name: ListCommentsByPost :many
SELECT id, post_id, author_name, author_email, author_url, author_ip, body, created_at FROM comments
WHERE post_id = ?
ORDER BY id
`

func (q *Queries) ListCommentsByPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Comment
	for rows.Next() {
		var i Comment
		if err := rows.Scan(
			&i.ID,
			&i.PostID,
			&i.AuthorName,
			&i.AuthorEmail,
			&i.AuthorUrl,
			&i.AuthorIp,
			&i.Body,
			&i.CreatedAt,
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

const deleteComment = `-- name: DeleteComment :exec
DELETE FROM comments WHERE id = ?
`

func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteComment, id)
	return err
}

const deleteCommentsByPost = `-- name: DeleteCommentsByPost :exec
DELETE FROM comments WHERE post_id = ?
`

func (q *Queries) DeleteCommentsByPost(ctx context.Context, postID int64) error {
	_, err := q.db.ExecContext(ctx, deleteCommentsByPost, postID)
	return err
}
