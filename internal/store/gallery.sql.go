// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const galleryColumns = `id, title, description, type, url, image_url, category, created_at, updated_at`

func scanGallery(row interface{ Scan(...any) error }) (Gallery, error) {
	var i Gallery
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Type,
		&i.Url,
		&i.ImageUrl,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countGalleryItems = `-- name: CountGalleryItems :one
SELECT COUNT(*) FROM gallery
`

func (q *Queries) CountGalleryItems(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countGalleryItems)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createGalleryItem = `-- name: CreateGalleryItem :one
INSERT INTO gallery (title, description, type, url, image_url, category, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + galleryColumns

type CreateGalleryItemParams struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Url         string    `json:"url"`
	ImageUrl    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Queries) CreateGalleryItem(ctx context.Context, arg CreateGalleryItemParams) (Gallery, error) {
	row := q.db.QueryRowContext(ctx, createGalleryItem,
		arg.Title,
		arg.Description,
		arg.Type,
		arg.Url,
		arg.ImageUrl,
		arg.Category,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanGallery(row)
}

const deleteGalleryItem = `-- name: DeleteGalleryItem :exec
DELETE FROM gallery WHERE id = ?
`

func (q *Queries) DeleteGalleryItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGalleryItem, id)
	return err
}

const getGalleryItemByID = `-- name: GetGalleryItemByID :one
SELECT ` + galleryColumns + ` FROM gallery WHERE id = ?
`

func (q *Queries) GetGalleryItemByID(ctx context.Context, id int64) (Gallery, error) {
	row := q.db.QueryRowContext(ctx, getGalleryItemByID, id)
	return scanGallery(row)
}

const listGalleryItems = `-- name: ListGalleryItems :many
SELECT ` + galleryColumns + ` FROM gallery
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListGalleryItems(ctx context.Context) ([]Gallery, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Gallery{}
	for rows.Next() {
		i, err := scanGallery(rows)
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

const listGalleryImageURLs = `-- name: ListGalleryImageURLs :many
SELECT image_url FROM gallery WHERE image_url != ''
`

func (q *Queries) ListGalleryImageURLs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryImageURLs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var imageUrl string
		if err := rows.Scan(&imageUrl); err != nil {
			return nil, err
		}
		items = append(items, imageUrl)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCategoryImageURLs = `-- name: ListCategoryImageURLs :many
SELECT image_url FROM categories WHERE image_url != ''
`

func (q *Queries) ListCategoryImageURLs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listCategoryImageURLs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var imageUrl string
		if err := rows.Scan(&imageUrl); err != nil {
			return nil, err
		}
		items = append(items, imageUrl)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateGalleryItem = `-- name: UpdateGalleryItem :one
UPDATE gallery SET
    title = ?,
    description = ?,
    type = ?,
    url = ?,
    image_url = ?,
    category = ?,
    updated_at = ?
WHERE id = ?
RETURNING ` + galleryColumns

type UpdateGalleryItemParams struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Url         string    `json:"url"`
	ImageUrl    string    `json:"image_url"`
	Category    string    `json:"category"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          int64     `json:"id"`
}

func (q *Queries) UpdateGalleryItem(ctx context.Context, arg UpdateGalleryItemParams) (Gallery, error) {
	row := q.db.QueryRowContext(ctx, updateGalleryItem,
		arg.Title,
		arg.Description,
		arg.Type,
		arg.Url,
		arg.ImageUrl,
		arg.Category,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanGallery(row)
}
