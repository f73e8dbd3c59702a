// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const productColumns = `id, name, slug, category, description, features, image_url, image_urls, specifications, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Category,
		&i.Description,
		&i.Features,
		&i.ImageUrl,
		&i.ImageUrls,
		&i.Specifications,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countProducts = `-- name: CountProducts :one
SELECT COUNT(*) FROM products
`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, slug, category, description, features, image_url, image_urls, specifications, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + productColumns

type CreateProductParams struct {
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

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, createProduct,
		arg.Name,
		arg.Slug,
		arg.Category,
		arg.Description,
		arg.Features,
		arg.ImageUrl,
		arg.ImageUrls,
		arg.Specifications,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanProduct(row)
}

const deleteProduct = `-- name: DeleteProduct :exec
DELETE FROM products WHERE id = ?
`

func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProduct, id)
	return err
}

const getProductByID = `-- name: GetProductByID :one
SELECT ` + productColumns + ` FROM products WHERE id = ?
`

func (q *Queries) GetProductByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRowContext(ctx, getProductByID, id)
	return scanProduct(row)
}

// Slugs are not unique; the newest row wins.
const getProductBySlug = `-- name: GetProductBySlug :one
SELECT ` + productColumns + ` FROM products WHERE slug = ?
ORDER BY created_at DESC, id DESC
LIMIT 1
`

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	row := q.db.QueryRowContext(ctx, getProductBySlug, slug)
	return scanProduct(row)
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + ` FROM products
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
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

const listRecentProducts = `-- name: ListRecentProducts :many
SELECT ` + productColumns + ` FROM products
ORDER BY created_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentProducts(ctx context.Context, limit int64) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listRecentProducts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
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

const listProductImageColumns = `-- name: ListProductImageColumns :many
SELECT image_url, image_urls FROM products
`

type ListProductImageColumnsRow struct {
	ImageUrl  string `json:"image_url"`
	ImageUrls string `json:"image_urls"`
}

func (q *Queries) ListProductImageColumns(ctx context.Context) ([]ListProductImageColumnsRow, error) {
	rows, err := q.db.QueryContext(ctx, listProductImageColumns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListProductImageColumnsRow{}
	for rows.Next() {
		var i ListProductImageColumnsRow
		if err := rows.Scan(&i.ImageUrl, &i.ImageUrls); err != nil {
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

const updateProduct = `-- name: UpdateProduct :one
UPDATE products SET
    name = ?,
    slug = ?,
    category = ?,
    description = ?,
    features = ?,
    image_url = ?,
    image_urls = ?,
    specifications = ?,
    updated_at = ?
WHERE id = ?
RETURNING ` + productColumns

type UpdateProductParams struct {
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Features       string    `json:"features"`
	ImageUrl       string    `json:"image_url"`
	ImageUrls      string    `json:"image_urls"`
	Specifications string    `json:"specifications"`
	UpdatedAt      time.Time `json:"updated_at"`
	ID             int64     `json:"id"`
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, updateProduct,
		arg.Name,
		arg.Slug,
		arg.Category,
		arg.Description,
		arg.Features,
		arg.ImageUrl,
		arg.ImageUrls,
		arg.Specifications,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanProduct(row)
}
