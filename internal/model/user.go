// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// Post statuses as stored in the posts table. Imported statuses other than
// draft and publish are stored verbatim.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Entity types recorded in import_items.
const (
	EntityUser     = "user"
	EntityPost     = "post"
	EntityCategory = "category"
	EntityTag      = "tag"
	EntityComment  = "comment"
)
