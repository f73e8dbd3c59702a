// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/atsaka/atsaka-web/internal/model"
)

// Catalog cache keys. All share the "catalog:" prefix.
const (
	catalogPrefix = "catalog:"
	keyProducts   = catalogPrefix + "products"
	keyCategories = catalogPrefix + "categories"
	keyGallery    = catalogPrefix + "gallery"
)

// CatalogCache caches the full product, category and gallery lists.
// Admin writes call the matching Invalidate method.
type CatalogCache struct {
	cache      Cache
	logger     *slog.Logger
	products   *TypedCache[[]model.Product]
	categories *TypedCache[[]model.Category]
	gallery    *TypedCache[[]model.GalleryItem]
}

// NewCatalogCache wraps c.
func NewCatalogCache(c Cache, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogCache{
		cache:      c,
		logger:     logger,
		products:   NewTypedCache[[]model.Product](c, ttl),
		categories: NewTypedCache[[]model.Category](c, ttl),
		gallery:    NewTypedCache[[]model.GalleryItem](c, ttl),
	}
}

// Products returns the cached product list, loading it on a miss.
func (cc *CatalogCache) Products(ctx context.Context, load func(context.Context) ([]model.Product, error)) ([]model.Product, error) {
	return cc.products.GetOrSet(ctx, keyProducts, func() ([]model.Product, error) { return load(ctx) })
}

// Categories returns the cached category list, loading it on a miss.
func (cc *CatalogCache) Categories(ctx context.Context, load func(context.Context) ([]model.Category, error)) ([]model.Category, error) {
	return cc.categories.GetOrSet(ctx, keyCategories, func() ([]model.Category, error) { return load(ctx) })
}

// Gallery returns the cached gallery list, loading it on a miss.
func (cc *CatalogCache) Gallery(ctx context.Context, load func(context.Context) ([]model.GalleryItem, error)) ([]model.GalleryItem, error) {
	return cc.gallery.GetOrSet(ctx, keyGallery, func() ([]model.GalleryItem, error) { return load(ctx) })
}

// InvalidateProducts drops the cached product list.
func (cc *CatalogCache) InvalidateProducts(ctx context.Context) {
	cc.invalidate(ctx, keyProducts)
}

// InvalidateCategories drops the cached category list.
func (cc *CatalogCache) InvalidateCategories(ctx context.Context) {
	cc.invalidate(ctx, keyCategories)
}

// InvalidateGallery drops the cached gallery list.
func (cc *CatalogCache) InvalidateGallery(ctx context.Context) {
	cc.invalidate(ctx, keyGallery)
}

// InvalidateAll drops every catalog entry.
func (cc *CatalogCache) InvalidateAll(ctx context.Context) {
	if err := cc.cache.DeleteByPrefix(ctx, catalogPrefix); err != nil {
		cc.logger.Warn("catalog cache invalidation failed",
			"error", err, "category", model.EventCategoryCache)
	}
}

func (cc *CatalogCache) invalidate(ctx context.Context, key string) {
	if err := cc.cache.Delete(ctx, key); err != nil {
		cc.logger.Warn("catalog cache invalidation failed",
			"key", key, "error", err, "category", model.EventCategoryCache)
	}
}
