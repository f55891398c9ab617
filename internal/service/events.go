// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the event log used as an audit trail of import
// runs.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/olegiv/ocms-mtif/internal/model"
	"github.com/olegiv/ocms-mtif/internal/store"
)

// DefaultEventLimit is the page size of ListEvents when none is given.
const DefaultEventLimit = 50

// EventService provides event logging functionality.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db store.DBTX) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	return err
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, metadata)
}

// LogImportEvent logs an import-related event.
func (s *EventService) LogImportEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryImport, message, metadata)
}

// ListEvents returns the most recent events, newest first.
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]store.Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.queries.ListEvents(ctx, store.ListEventsParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
}

// DeleteOldEvents removes events older than the specified duration.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return s.queries.DeleteOldEvents(ctx, cutoff)
}
