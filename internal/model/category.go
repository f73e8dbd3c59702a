// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/atsaka/atsaka-web/internal/store"
)

// Well-known category slugs.
const (
	CategoryPump      = "pump"
	CategoryEquipment = "equipment"
	CategoryAccessory = "aksesori"
)

// Category is a product category. Products reference it by slug only.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryFromRow converts a categories row.
func CategoryFromRow(row store.Category) Category {
	return Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		ImageURL:    row.ImageUrl,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// CategoriesFromRows converts a slice of rows.
func CategoriesFromRows(rows []store.Category) []Category {
	out := make([]Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryFromRow(r))
	}
	return out
}

// CategoryLabel maps a category slug to its display label.
func CategoryLabel(slug string) string {
	switch slug {
	case CategoryPump:
		return "Pompa Pemadam"
	case CategoryEquipment:
		return "Peralatan"
	default:
		return "Aksesoris"
	}
}
