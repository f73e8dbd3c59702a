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

// SaveProductInput is a create (ID == 0) or update request.
type SaveProductInput struct {
	ID             int64
	Name           string
	Category       string
	Description    string
	Features       []string
	Specifications []model.Spec

	// Image sources, in priority order.
	Files      []UploadFile
	ManualURLs []string
	ImageURL   string

	OnProgress func(Progress)
}

// SaveProductResult reports what a save did.
type SaveProductResult struct {
	Product  model.Product
	Created  bool
	Rejected []*FileError
	// Cleaned is the number of old images removed from storage.
	Cleaned int
}

// ProductService manages products.
type ProductService struct {
	queries  *store.Queries
	uploader *ImageUploader
	catalog  *cache.CatalogCache
	logger   *slog.Logger
	now      func() time.Time
}

// NewProductService creates a ProductService.
func NewProductService(db *sql.DB, uploader *ImageUploader, catalog *cache.CatalogCache, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		queries:  store.New(db),
		uploader: uploader,
		catalog:  catalog,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ProductService) load(ctx context.Context) ([]model.Product, error) {
	rows, err := s.queries.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return model.ProductsFromRows(rows), nil
}

// List returns all products, newest first.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.catalog.Products(ctx, s.load)
}

// GetBySlug returns the newest product with slug.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (model.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

// GetByID reads a product directly from the database.
func (s *ProductService) GetByID(ctx context.Context, id int64) (model.Product, error) {
	row, err := s.queries.GetProductByID(ctx, id)
	if err != nil {
		return model.Product{}, notFound(err)
	}
	return model.ProductFromRow(row), nil
}

// Recent returns up to n products, newest first.
func (s *ProductService) Recent(ctx context.Context, n int) ([]model.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > n {
		products = products[:n]
	}
	return products, nil
}

// Count returns the number of products.
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountProducts(ctx)
}

// Save uploads new images, resolves the image set, writes the row and then
// removes replaced images from storage. Cleanup only follows a successful
// write and its failures are logged, not returned.
func (s *ProductService) Save(ctx context.Context, in SaveProductInput) (*SaveProductResult, error) {
	var existing *model.Product
	if in.ID != 0 {
		p, err := s.GetByID(ctx, in.ID)
		if err != nil {
			return nil, err
		}
		existing = &p
	}

	uploaded, rejected := s.uploader.UploadBatch(ctx, in.Files, model.BucketProductImages, model.FolderProducts, in.OnProgress)
	set := ResolveImageSet(URLs(uploaded), in.ManualURLs, strings.TrimSpace(in.ImageURL), existing)

	name := strings.TrimSpace(in.Name)
	slug := util.Slugify(name)
	if slug == "" {
		slug = fmt.Sprintf("produk-%d", s.now().Unix())
	}

	now := s.now()
	var row store.Product
	var err error
	if existing == nil {
		row, err = s.queries.CreateProduct(ctx, store.CreateProductParams{
			Name:           name,
			Slug:           slug,
			Category:       strings.TrimSpace(in.Category),
			Description:    in.Description,
			Features:       model.EncodeStrings(in.Features),
			ImageUrl:       set.Main(),
			ImageUrls:      model.EncodeStrings(set.All()),
			Specifications: model.EncodeSpecs(in.Specifications),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	} else {
		row, err = s.queries.UpdateProduct(ctx, store.UpdateProductParams{
			Name:           name,
			Slug:           slug,
			Category:       strings.TrimSpace(in.Category),
			Description:    in.Description,
			Features:       model.EncodeStrings(in.Features),
			ImageUrl:       set.Main(),
			ImageUrls:      model.EncodeStrings(set.All()),
			Specifications: model.EncodeSpecs(in.Specifications),
			UpdatedAt:      now,
			ID:             existing.ID,
		})
	}
	if err != nil {
		if len(uploaded) > 0 {
			s.logger.Warn("product write failed after upload, objects left orphaned",
				"paths", uploadedPaths(uploaded), "category", model.EventCategoryStorage)
		}
		return nil, fmt.Errorf("saving product: %w", err)
	}

	s.catalog.InvalidateProducts(ctx)

	result := &SaveProductResult{
		Product:  model.ProductFromRow(row),
		Created:  existing == nil,
		Rejected: rejected,
	}
	if existing != nil && set.ReplacesExisting() {
		result.Cleaned = s.uploader.DeleteByURLs(ctx, StaleImages(existing.AllImages(), set.All()))
	}

	s.logger.Info("product saved", "id", row.ID, "slug", row.Slug, "created", result.Created,
		"images", len(set.All()), "category", model.EventCategoryProduct)
	return result, nil
}

// Delete removes the product row. Its images stay in storage.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.queries.GetProductByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.queries.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	s.catalog.InvalidateProducts(ctx)
	s.logger.Info("product deleted", "id", id, "category", model.EventCategoryProduct)
	return nil
}

// ReferencedImageURLs returns every image URL stored on a product.
func (s *ProductService) ReferencedImageURLs(ctx context.Context) ([]string, error) {
	rows, err := s.queries.ListProductImageColumns(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range rows {
		if r.ImageUrl != "" {
			out = append(out, r.ImageUrl)
		}
		out = append(out, model.DecodeStrings(r.ImageUrls)...)
	}
	return out, nil
}

func uploadedPaths(images []UploadedImage) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.Path)
	}
	return out
}
