// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the events table so import problems survive the terminal session.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/ocms-mtif/internal/model"
	"github.com/olegiv/ocms-mtif/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // Minimum level to forward to the events table (default: WARN)
	attrs   []slog.Attr
	group   string
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	if name != "" {
		clone.group = h.qualifyKey(name)
	}
	return &clone
}

// writeToEventLog writes a log record to the events table. The record's own
// context may already be cancelled, so the write uses a background context.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify([]slog.Attr{a})...)
		return true
	})

	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     slogLevelToEventLevel(r.Level),
		Category:  extractCategory(r.Message, attrs),
		Message:   r.Message,
		Metadata:  extractMetadata(attrs),
		CreatedAt: r.Time,
	})
}

func (h *EventLogHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.qualifyKey(a.Key), Value: a.Value}
	}
	return out
}

func (h *EventLogHandler) qualifyKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// slogLevelToEventLevel converts a slog.Level to an event level.
func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory returns the value of a "category" attribute, or infers one
// from the message.
func extractCategory(message string, attrs []slog.Attr) string {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == "category" {
			if v := attrs[i].Value.String(); v != "" {
				return v
			}
		}
	}

	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "import") || strings.Contains(msg, "batch"):
		return model.EventCategoryImport
	case strings.Contains(msg, "parse") || strings.Contains(msg, "encoding") || strings.Contains(msg, "record"):
		return model.EventCategoryParse
	case strings.Contains(msg, "database") || strings.Contains(msg, "migration") || strings.Contains(msg, "store"):
		return model.EventCategoryStore
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return model.EventCategoryConfig
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata encodes every attribute except "category" as a JSON object.
func extractMetadata(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return "{}"
	}

	meta := make(map[string]any, len(attrs))
	for _, a := range attrs {
		if a.Key == "category" || a.Key == "" {
			continue
		}
		meta[a.Key] = attrValue(a.Value)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindGroup:
		group := make(map[string]any)
		for _, a := range v.Group() {
			group[a.Key] = attrValue(a.Value)
		}
		return group
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return s.String()
		}
		return v.String()
	default:
		return v.String()
	}
}
