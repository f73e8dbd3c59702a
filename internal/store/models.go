// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageUrl    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContactMessage struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Company     string       `json:"company"`
	Subject     string       `json:"subject"`
	Message     string       `json:"message"`
	IpAddress   string       `json:"ip_address"`
	CountryCode string       `json:"country_code"`
	UserAgent   string       `json:"user_agent"`
	Browser     string       `json:"browser"`
	Os          string       `json:"os"`
	DeviceType  string       `json:"device_type"`
	CreatedAt   time.Time    `json:"created_at"`
	ReadAt      sql.NullTime `json:"read_at"`
}

type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type Gallery struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Url         string    `json:"url"`
	ImageUrl    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is the raw row. Features, ImageUrls and Specifications hold JSON text.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Features       string    `json:"features"`
	ImageUrl       string    `json:"image_url"`
	ImageUrls      string    `json:"image_urls"`
	Specifications string    `json:"specifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password_hash"`
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
}
