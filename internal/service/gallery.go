// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atsaka/atsaka-web/internal/cache"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/store"
)

var (
	// ErrGalleryImageRequired is returned when a photo has neither an upload nor a URL.
	ErrGalleryImageRequired = errors.New("Foto membutuhkan gambar yang diunggah atau URL gambar")
	// ErrInvalidVideo is returned when a video entry has no recognisable YouTube ID.
	ErrInvalidVideo = errors.New("Masukkan ID atau URL YouTube yang valid")
	// ErrInvalidGalleryType is returned for types other than photo and video.
	ErrInvalidGalleryType = errors.New("Jenis galeri tidak valid")
)

// SaveGalleryInput is a create (ID == 0) or update request.
type SaveGalleryInput struct {
	ID          int64
	Title       string
	Description string
	Type        model.GalleryType
	Category    string
	// VideoURL is a YouTube ID or URL for videos.
	VideoURL string
	// File takes priority over ImageURL for photos.
	File     *UploadFile
	ImageURL string
}

// GalleryService manages gallery entries.
type GalleryService struct {
	queries  *store.Queries
	uploader *ImageUploader
	catalog  *cache.CatalogCache
	logger   *slog.Logger
	now      func() time.Time
}

// NewGalleryService creates a GalleryService.
func NewGalleryService(db *sql.DB, uploader *ImageUploader, catalog *cache.CatalogCache, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GalleryService{
		queries:  store.New(db),
		uploader: uploader,
		catalog:  catalog,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns all gallery entries, newest first.
func (s *GalleryService) List(ctx context.Context) ([]model.GalleryItem, error) {
	return s.catalog.Gallery(ctx, func(ctx context.Context) ([]model.GalleryItem, error) {
		rows, err := s.queries.ListGalleryItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing gallery: %w", err)
		}
		return model.GalleryItemsFromRows(rows), nil
	})
}

// Get returns one entry.
func (s *GalleryService) Get(ctx context.Context, id int64) (model.GalleryItem, error) {
	row, err := s.queries.GetGalleryItemByID(ctx, id)
	if err != nil {
		return model.GalleryItem{}, notFound(err)
	}
	return model.GalleryItemFromRow(row), nil
}

// Count returns the number of entries.
func (s *GalleryService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountGalleryItems(ctx)
}

// Categories returns the distinct categories of items in order of first appearance.
func Categories(items []model.GalleryItem) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// FilterGallery returns the items in category, or all items when it is empty.
func FilterGallery(items []model.GalleryItem, category string) []model.GalleryItem {
	if category == "" {
		return items
	}
	out := make([]model.GalleryItem, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Save creates or updates an entry. Replacing a photo with a new upload
// removes the previous image from storage after the write.
func (s *GalleryService) Save(ctx context.Context, in SaveGalleryInput) (model.GalleryItem, error) {
	if !in.Type.Valid() {
		return model.GalleryItem{}, ErrInvalidGalleryType
	}

	var existing *model.GalleryItem
	if in.ID != 0 {
		it, err := s.Get(ctx, in.ID)
		if err != nil {
			return model.GalleryItem{}, err
		}
		existing = &it
	}

	var videoURL, imageURL string
	var uploaded *UploadedImage

	switch in.Type {
	case model.GalleryVideo:
		videoURL = strings.TrimSpace(in.VideoURL)
		if model.YouTubeID(videoURL) == "" {
			return model.GalleryItem{}, ErrInvalidVideo
		}
	case model.GalleryPhoto:
		switch {
		case in.File != nil:
			img, err := s.uploader.Upload(ctx, *in.File, model.BucketGalleryImages, model.FolderGallery)
			if err != nil {
				return model.GalleryItem{}, err
			}
			uploaded = img
			imageURL = img.URL
		case strings.TrimSpace(in.ImageURL) != "":
			imageURL = strings.TrimSpace(in.ImageURL)
		case existing != nil && existing.ImageURL != "":
			imageURL = existing.ImageURL
		default:
			return model.GalleryItem{}, ErrGalleryImageRequired
		}
	}

	now := s.now()
	var row store.Gallery
	var err error
	if existing == nil {
		row, err = s.queries.CreateGalleryItem(ctx, store.CreateGalleryItemParams{
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Type:        string(in.Type),
			Url:         videoURL,
			ImageUrl:    imageURL,
			Category:    in.Category,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		row, err = s.queries.UpdateGalleryItem(ctx, store.UpdateGalleryItemParams{
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Type:        string(in.Type),
			Url:         videoURL,
			ImageUrl:    imageURL,
			Category:    in.Category,
			UpdatedAt:   now,
			ID:          existing.ID,
		})
	}
	if err != nil {
		if uploaded != nil {
			s.logger.Warn("gallery write failed after upload, object left orphaned",
				"path", uploaded.Path, "category", model.EventCategoryStorage)
		}
		return model.GalleryItem{}, fmt.Errorf("saving gallery item: %w", err)
	}

	s.catalog.InvalidateGallery(ctx)

	if existing != nil && uploaded != nil {
		s.uploader.DeleteByURLs(ctx, StaleImages([]string{existing.ImageURL}, []string{imageURL}))
	}

	s.logger.Info("gallery item saved", "id", row.ID, "type", row.Type, "category", model.EventCategoryGallery)
	return model.GalleryItemFromRow(row), nil
}

// Delete removes an entry. Its image stays in storage.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.queries.GetGalleryItemByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.queries.DeleteGalleryItem(ctx, id); err != nil {
		return fmt.Errorf("deleting gallery item: %w", err)
	}
	s.catalog.InvalidateGallery(ctx)
	s.logger.Info("gallery item deleted", "id", id, "category", model.EventCategoryGallery)
	return nil
}

// ReferencedImageURLs returns the image URLs stored on gallery entries and categories.
func (s *GalleryService) ReferencedImageURLs(ctx context.Context) ([]string, error) {
	gallery, err := s.queries.ListGalleryImageURLs(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.queries.ListCategoryImageURLs(ctx)
	if err != nil {
		return nil, err
	}
	return append(gallery, categories...), nil
}
