// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/atsaka/atsaka-web/internal/store"
)

// GalleryType is the kind of a gallery entry.
type GalleryType string

// Gallery entry kinds.
const (
	GalleryPhoto GalleryType = "photo"
	GalleryVideo GalleryType = "video"
)

// Valid reports whether t is a known gallery type.
func (t GalleryType) Valid() bool {
	return t == GalleryPhoto || t == GalleryVideo
}

// Gallery categories.
const (
	GalleryCategoryField    = "field"
	GalleryCategoryProduct  = "product"
	GalleryCategoryTraining = "training"
)

// GalleryItem is a photo or a video. Videos populate URL, photos populate ImageURL.
type GalleryItem struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        GalleryType `json:"type"`
	URL         string      `json:"url,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Category    string      `json:"category"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// GalleryItemFromRow converts a gallery row.
func GalleryItemFromRow(row store.Gallery) GalleryItem {
	return GalleryItem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Type:        GalleryType(row.Type),
		URL:         row.Url,
		ImageURL:    row.ImageUrl,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// GalleryItemsFromRows converts a slice of rows.
func GalleryItemsFromRows(rows []store.Gallery) []GalleryItem {
	out := make([]GalleryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, GalleryItemFromRow(r))
	}
	return out
}

// IsVideo reports whether the entry is a video.
func (g GalleryItem) IsVideo() bool {
	return g.Type == GalleryVideo
}

// CategoryLabel returns the display label for the entry's category.
func (g GalleryItem) CategoryLabel() string {
	return GalleryCategoryLabel(g.Category)
}

// EmbedURL returns the YouTube embed URL for a video entry.
func (g GalleryItem) EmbedURL() string {
	id := YouTubeID(g.URL)
	if !g.IsVideo() || id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// ThumbnailURL returns the preview image: a YouTube poster for videos, the image for photos.
func (g GalleryItem) ThumbnailURL() string {
	if g.IsVideo() {
		if id := YouTubeID(g.URL); id != "" {
			return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
		}
		return ""
	}
	return g.ImageURL
}

// GalleryCategoryLabel maps a gallery category to its display label.
func GalleryCategoryLabel(category string) string {
	switch category {
	case GalleryCategoryField:
		return "Field Operations"
	case GalleryCategoryProduct:
		return "Product Showcase"
	default:
		return "Training"
	}
}

var youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeID extracts a video ID from a bare ID or a YouTube URL.
func YouTubeID(value string) string {
	value = strings.TrimSpace(value)
	if youTubeIDPattern.MatchString(value) {
		return value
	}

	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}

	if youTubeIDPattern.MatchString(id) {
		return id
	}
	return ""
}
