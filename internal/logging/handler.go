// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the database-backed event log shown on the admin dashboard.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/store"
)

// EventLogHandler wraps another handler and also writes records at or above
// its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // minimum level forwarded to the event log
	attrs   []slog.Attr
}

// NewEventLogHandler forwards WARN and above to the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.inner.Enabled(ctx, r.Level) {
		err = h.inner.Handle(ctx, r)
	}
	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return err
}

// WithAttrs implements slog.Handler. Attributes are kept so a logger built
// with With("category", ...) still categorises its events.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog uses a background context so events survive a cancelled request.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	ctx := context.Background()
	_, err := h.queries.RecordEvent(ctx, store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  category(r.Message, attrs),
		Message:   r.Message,
		UserID:    userID(attrs),
		Metadata:  metadata(attrs),
		CreatedAt: r.Time,
	})
	if err != nil && h.inner.Enabled(ctx, slog.LevelError) {
		failed := slog.NewRecord(time.Now(), slog.LevelError, "event log write failed", 0)
		failed.AddAttrs(slog.String("error", err.Error()), slog.String("event", r.Message))
		_ = h.inner.Handle(ctx, failed)
	}
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// category uses an explicit "category" attribute, otherwise it guesses from the message.
func category(message string, attrs []slog.Attr) string {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == "category" {
			if c := attrs[i].Value.String(); c != "" {
				return c
			}
		}
	}

	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, "auth", "login", "logout", "session", "password"):
		return model.EventCategoryAuth
	case containsAny(msg, "storage", "upload", "image", "bucket", "orphan"):
		return model.EventCategoryStorage
	case containsAny(msg, "product", "catalog"):
		return model.EventCategoryProduct
	case containsAny(msg, "gallery", "video"):
		return model.EventCategoryGallery
	case containsAny(msg, "contact", "message"):
		return model.EventCategoryContact
	case containsAny(msg, "cache", "redis"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func userID(attrs []slog.Attr) sql.NullInt64 {
	for _, a := range attrs {
		if a.Key == "user_id" && a.Value.Kind() == slog.KindInt64 {
			return sql.NullInt64{Int64: a.Value.Int64(), Valid: true}
		}
	}
	return sql.NullInt64{}
}

// metadata renders every attribute except category as a flat JSON object.
func metadata(attrs []slog.Attr) string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == "category" || a.Key == "" {
			continue
		}
		m[a.Key] = a.Value.String()
	}
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
