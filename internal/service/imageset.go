// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"net/url"
	"strings"

	"github.com/atsaka/atsaka-web/internal/model"
)

// ImageSet is the source of a record's images. It is one of UploadedImages,
// ManualImages, ExistingImages or NoImages.
type ImageSet interface {
	// Main is the stored image_url.
	Main() string
	// All is the stored image_urls.
	All() []string
	// ReplacesExisting reports whether images from before the save become
	// candidates for storage cleanup.
	ReplacesExisting() bool

	imageSet()
}

// UploadedImages are freshly uploaded files.
type UploadedImages struct {
	URLs []string
}

func (s UploadedImages) Main() string { return first(s.URLs) }
func (s UploadedImages) All() []string { return s.URLs }
func (s UploadedImages) ReplacesExisting() bool { return true }
func (UploadedImages) imageSet() {}

// ManualImages were typed in as URLs. Primary, when set, overrides the first URL.
type ManualImages struct {
	URLs    []string
	Primary string
}

func (s ManualImages) Main() string {
	if s.Primary != "" {
		return s.Primary
	}
	return first(s.URLs)
}

func (s ManualImages) All() []string {
	if len(s.URLs) > 0 {
		return s.URLs
	}
	if s.Primary != "" {
		return []string{s.Primary}
	}
	return []string{}
}

func (s ManualImages) ReplacesExisting() bool { return false }
func (ManualImages) imageSet() {}

// ExistingImages keeps what the record already had.
type ExistingImages struct {
	MainURL string
	URLs    []string
}

func (s ExistingImages) Main() string { return s.MainURL }
func (s ExistingImages) All() []string { return s.URLs }
func (s ExistingImages) ReplacesExisting() bool { return false }
func (ExistingImages) imageSet() {}

// NoImages is a record created without any image.
type NoImages struct{}

func (NoImages) Main() string { return "" }
func (NoImages) All() []string { return []string{} }
func (NoImages) ReplacesExisting() bool { return false }
func (NoImages) imageSet() {}

// ResolveImageSet picks the image source for a product save. Uploads win over
// manual URLs, which win over the existing images of an edited product. On
// create the form's single image URL may stand in for the manual list.
func ResolveImageSet(uploaded, manual []string, formMain string, existing *model.Product) ImageSet {
	if len(uploaded) > 0 {
		return UploadedImages{URLs: uploaded}
	}
	if existing != nil {
		if len(manual) > 0 {
			return ManualImages{URLs: manual}
		}
		return ExistingImages{MainURL: existing.ImageURL, URLs: existing.AllImages()}
	}
	if len(manual) > 0 || formMain != "" {
		return ManualImages{URLs: manual, Primary: formMain}
	}
	return NoImages{}
}

// StaleImages returns the URLs in old that are not in current.
func StaleImages(old, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, u := range current {
		keep[u] = struct{}{}
	}
	var stale []string
	seen := make(map[string]struct{}, len(old))
	for _, u := range old {
		if u == "" {
			continue
		}
		if _, ok := keep[u]; ok {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		stale = append(stale, u)
	}
	return stale
}

// ParseImageURLs reads one URL per line. Lines not starting with "http" are
// ignored; the rest must be absolute URLs.
func ParseImageURLs(text string) ([]string, error) {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "http") {
			continue
		}
		urls = append(urls, line)
	}
	if len(urls) == 0 {
		return nil, ErrNoImageURLs
	}

	var invalid []string
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			invalid = append(invalid, raw)
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidURLsError{URLs: invalid}
	}
	return urls, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
