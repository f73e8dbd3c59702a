// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const contactMessageColumns = `id, name, email, phone, company, subject, message, ip_address, country_code, user_agent, browser, os, device_type, created_at, read_at`

func scanContactMessage(row interface{ Scan(...any) error }) (ContactMessage, error) {
	var i ContactMessage
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Company,
		&i.Subject,
		&i.Message,
		&i.IpAddress,
		&i.CountryCode,
		&i.UserAgent,
		&i.Browser,
		&i.Os,
		&i.DeviceType,
		&i.CreatedAt,
		&i.ReadAt,
	)
	return i, err
}

const countUnreadContactMessages = `-- name: CountUnreadContactMessages :one
SELECT COUNT(*) FROM contact_messages WHERE read_at IS NULL
`

func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUnreadContactMessages)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createContactMessage = `-- name: CreateContactMessage :one
INSERT INTO contact_messages (
    name, email, phone, company, subject, message,
    ip_address, country_code, user_agent, browser, os, device_type, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + contactMessageColumns

type CreateContactMessageParams struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	IpAddress   string    `json:"ip_address"`
	CountryCode string    `json:"country_code"`
	UserAgent   string    `json:"user_agent"`
	Browser     string    `json:"browser"`
	Os          string    `json:"os"`
	DeviceType  string    `json:"device_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Company,
		arg.Subject,
		arg.Message,
		arg.IpAddress,
		arg.CountryCode,
		arg.UserAgent,
		arg.Browser,
		arg.Os,
		arg.DeviceType,
		arg.CreatedAt,
	)
	return scanContactMessage(row)
}

const deleteContactMessage = `-- name: DeleteContactMessage :execrows
DELETE FROM contact_messages WHERE id = ?
`

func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteContactMessage, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listContactMessages = `-- name: ListContactMessages :many
SELECT ` + contactMessageColumns + ` FROM contact_messages
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListContactMessagesParams struct {
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
}

func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ContactMessage{}
	for rows.Next() {
		i, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countContactMessages = `-- name: CountContactMessages :one
SELECT COUNT(*) FROM contact_messages
`

func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countContactMessages)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const markContactMessageRead = `-- name: MarkContactMessageRead :execrows
UPDATE contact_messages SET read_at = COALESCE(read_at, ?) WHERE id = ?
`

type MarkContactMessageReadParams struct {
	ReadAt sql.NullTime `json:"read_at"`
	ID     int64        `json:"id"`
}

func (q *Queries) MarkContactMessageRead(ctx context.Context, arg MarkContactMessageReadParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markContactMessageRead, arg.ReadAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
