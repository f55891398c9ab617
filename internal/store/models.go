// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Post struct {
	ID            int64        `json:"id"`
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

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	AuthorUrl   string    `json:"author_url"`
	AuthorIp    string    `json:"author_ip"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type ImportItem struct {
	ID         int64     `json:"id"`
	BatchID    string    `json:"batch_id"`
	Source     string    `json:"source"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
