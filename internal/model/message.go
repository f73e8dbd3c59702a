// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/atsaka/atsaka-web/internal/store"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Company     string
	Subject     string
	Message     string
	IPAddress   string
	CountryCode string
	UserAgent   string
	Browser     string
	OS          string
	DeviceType  string
	CreatedAt   time.Time
	ReadAt      *time.Time
}

// IsRead reports whether an admin has opened the message.
func (m ContactMessage) IsRead() bool {
	return m.ReadAt != nil
}

// ContactMessageFromRow converts a contact_messages row.
func ContactMessageFromRow(row store.ContactMessage) ContactMessage {
	m := ContactMessage{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		Company:     row.Company,
		Subject:     row.Subject,
		Message:     row.Message,
		IPAddress:   row.IpAddress,
		CountryCode: row.CountryCode,
		UserAgent:   row.UserAgent,
		Browser:     row.Browser,
		OS:          row.Os,
		DeviceType:  row.DeviceType,
		CreatedAt:   row.CreatedAt,
	}
	if row.ReadAt.Valid {
		t := row.ReadAt.Time
		m.ReadAt = &t
	}
	return m
}
