// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mileusna/useragent"

	"github.com/atsaka/atsaka-web/internal/geoip"
	"github.com/atsaka/atsaka-web/internal/metrics"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/validation"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"max=30"`
	Company string `form:"company" validate:"max=100"`
	Subject string `form:"subject" validate:"max=200"`
	Message string `form:"message" validate:"required,max=5000"`
}

// RequestMeta describes the client that submitted a form.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// ClientInfo is the parsed form of a User-Agent header.
type ClientInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent extracts browser, OS and device type.
func ParseUserAgent(raw string) ClientInfo {
	ua := useragent.Parse(raw)

	info := ClientInfo{Browser: ua.Name, OS: ua.OS}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}

	switch {
	case ua.Mobile:
		info.DeviceType = "mobile"
	case ua.Tablet:
		info.DeviceType = "tablet"
	case ua.Bot:
		info.DeviceType = "bot"
	default:
		info.DeviceType = "desktop"
	}
	return info
}

// ContactService stores contact form submissions.
type ContactService struct {
	queries *store.Queries
	events  *EventService
	geo     *geoip.Resolver
	policy  *bluemonday.Policy
	logger  *slog.Logger
	now     func() time.Time
}

// NewContactService creates a ContactService. geo may be nil.
func NewContactService(db *sql.DB, events *EventService, geo *geoip.Resolver, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	if geo == nil {
		geo = &geoip.Resolver{}
	}
	return &ContactService{
		queries: store.New(db),
		events:  events,
		geo:     geo,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger,
		now:     time.Now,
	}
}

// clean strips all markup from s. The policy escapes entities, which the
// templates escape again, so they are decoded back to plain text.
func (s *ContactService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(strings.TrimSpace(v))))
}

// Submit validates, sanitizes and stores a message. Field problems are
// returned as validation.Errors.
func (s *ContactService) Submit(ctx context.Context, in ContactInput, meta RequestMeta) (model.ContactMessage, error) {
	in = ContactInput{
		Name:    s.clean(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   s.clean(in.Phone),
		Company: s.clean(in.Company),
		Subject: s.clean(in.Subject),
		Message: s.clean(in.Message),
	}
	if err := validation.Validate(in); err != nil {
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return model.ContactMessage{}, err
	}

	client := ParseUserAgent(meta.UserAgent)
	row, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Company:     in.Company,
		Subject:     in.Subject,
		Message:     in.Message,
		IpAddress:   meta.IP,
		CountryCode: s.geo.Country(meta.IP),
		UserAgent:   meta.UserAgent,
		Browser:     client.Browser,
		Os:          client.OS,
		DeviceType:  client.DeviceType,
		CreatedAt:   s.now(),
	})
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return model.ContactMessage{}, fmt.Errorf("saving contact message: %w", err)
	}

	metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	if s.events != nil {
		_ = s.events.LogInfo(ctx, model.EventCategoryContact, "Contact message received", nil, map[string]any{
			"message_id": row.ID,
			"country":    row.CountryCode,
			"device":     row.DeviceType,
		})
	}
	return model.ContactMessageFromRow(row), nil
}

// DefaultMessagesPerPage is the inbox page size used when none is given.
const DefaultMessagesPerPage = 20

// List returns one page of messages, newest first, and the total count.
// Pages past the end clamp to the last page.
func (s *ContactService) List(ctx context.Context, page, perPage int) ([]model.ContactMessage, int64, error) {
	total, err := s.queries.CountContactMessages(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}
	if perPage < 1 {
		perPage = DefaultMessagesPerPage
	}
	totalPages := max((int(total)+perPage-1)/perPage, 1)
	page = min(max(page, 1), totalPages)

	rows, err := s.queries.ListContactMessages(ctx, store.ListContactMessagesParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing messages: %w", err)
	}
	out := make([]model.ContactMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ContactMessageFromRow(r))
	}
	return out, total, nil
}

// MarkRead stamps a message as read. A message read earlier keeps its first
// read time. Unknown ids return ErrNotFound.
func (s *ContactService) MarkRead(ctx context.Context, id int64) error {
	n, err := s.queries.MarkContactMessageRead(ctx, store.MarkContactMessageReadParams{
		ReadAt: sql.NullTime{Time: s.now(), Valid: true},
		ID:     id,
	})
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message. Unknown ids return ErrNotFound.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteContactMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnread returns how many messages have not been read.
func (s *ContactService) CountUnread(ctx context.Context) (int64, error) {
	return s.queries.CountUnreadContactMessages(ctx)
}
