// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/store"
)

// DefaultEventRetention is how long events are kept before the daily purge.
const DefaultEventRetention = 30 * 24 * time.Hour

// Event is an event log row with decoded metadata.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    int64
	Metadata  map[string]any
	CreatedAt time.Time
}

// IsProblem reports whether the event is a warning or an error.
func (e Event) IsProblem() bool {
	return e.Level == model.EventLevelWarning || e.Level == model.EventLevelError
}

// EventService writes and reads the audit event log.
type EventService struct {
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{queries: store.New(db), logger: logger, now: time.Now}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *int64, metadata map[string]any) error {
	var nullUserID sql.NullInt64
	if userID != nil {
		nullUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}

	metadataJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.RecordEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    nullUserID,
		Metadata:  metadataJSON,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Debug("failed to log event", "error", err)
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, userID, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// ListRecent returns the newest events.
func (s *EventService) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.queries.ListRecentEvents(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return eventsFromRows(rows), nil
}

// ListProblems returns the newest warning and error events.
func (s *EventService) ListProblems(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.queries.ListRecentProblemEvents(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing problem events: %w", err)
	}
	return eventsFromRows(rows), nil
}

// DeleteOlderThan removes events older than retention and returns how many went.
func (s *EventService) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	n, err := s.queries.DeleteEventsOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	return n, nil
}

func eventsFromRows(rows []store.Event) []Event {
	out := make([]Event, 0, len(rows))
	for _, r := range rows {
		e := Event{
			ID:        r.ID,
			Level:     r.Level,
			Category:  r.Category,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		}
		if r.UserID.Valid {
			e.UserID = r.UserID.Int64
		}
		if r.Metadata != "" && r.Metadata != "{}" {
			_ = json.Unmarshal([]byte(r.Metadata), &e.Metadata)
		}
		out = append(out, e)
	}
	return out
}
