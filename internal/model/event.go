// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants shared by the store, the importer
// and the event log.
package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryImport = "import"
	EventCategoryParse  = "parse"
	EventCategoryStore  = "store"
	EventCategoryConfig = "config"
	EventCategorySystem = "system"
)
