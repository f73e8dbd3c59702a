// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atsaka/atsaka-web/internal/cache"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/util"
)

// SaveCategoryInput is a create (ID == 0) or update request.
type SaveCategoryInput struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
}

// CategoryService manages product categories.
type CategoryService struct {
	queries *store.Queries
	catalog *cache.CatalogCache
	logger  *slog.Logger
	now     func() time.Time
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(db *sql.DB, catalog *cache.CatalogCache, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{queries: store.New(db), catalog: catalog, logger: logger, now: time.Now}
}

// List returns categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.catalog.Categories(ctx, func(ctx context.Context) ([]model.Category, error) {
		rows, err := s.queries.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing categories: %w", err)
		}
		return model.CategoriesFromRows(rows), nil
	})
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id int64) (model.Category, error) {
	row, err := s.queries.GetCategoryByID(ctx, id)
	if err != nil {
		return model.Category{}, notFound(err)
	}
	return model.CategoryFromRow(row), nil
}

// ReferencedImageURLs returns the image URL of every category that has one.
func (s *CategoryService) ReferencedImageURLs(ctx context.Context) ([]string, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range rows {
		if r.ImageUrl != "" {
			out = append(out, r.ImageUrl)
		}
	}
	return out, nil
}

// Count returns the number of categories.
func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountCategories(ctx)
}

// Save creates or updates a category. The slug is derived from the name.
func (s *CategoryService) Save(ctx context.Context, in SaveCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	slug := util.Slugify(name)
	if slug == "" {
		slug = fmt.Sprintf("kategori-%d", s.now().Unix())
	}
	now := s.now()

	var row store.Category
	var err error
	if in.ID == 0 {
		row, err = s.queries.CreateCategory(ctx, store.CreateCategoryParams{
			Name:        name,
			Slug:        slug,
			Description: in.Description,
			ImageUrl:    strings.TrimSpace(in.ImageURL),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		if _, err := s.queries.GetCategoryByID(ctx, in.ID); err != nil {
			return model.Category{}, notFound(err)
		}
		row, err = s.queries.UpdateCategory(ctx, store.UpdateCategoryParams{
			Name:        name,
			Slug:        slug,
			Description: in.Description,
			ImageUrl:    strings.TrimSpace(in.ImageURL),
			UpdatedAt:   now,
			ID:          in.ID,
		})
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("saving category: %w", err)
	}

	s.catalog.InvalidateCategories(ctx)
	s.logger.Info("category saved", "id", row.ID, "slug", row.Slug, "category", model.EventCategoryProduct)
	return model.CategoryFromRow(row), nil
}

// Delete removes a category. Products keep their category string.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.queries.GetCategoryByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.queries.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	s.catalog.InvalidateCategories(ctx)
	return nil
}
