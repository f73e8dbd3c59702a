// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"reflect"
	"testing"

	"github.com/atsaka/atsaka-web/internal/store"
)

func TestProductFromRow(t *testing.T) {
	p := ProductFromRow(store.Product{
		ID:             7,
		Name:           "Pompa",
		Features:       `["a","b"]`,
		ImageUrl:       "m.jpg",
		ImageUrls:      `["m.jpg","x.jpg"]`,
		Specifications: `[{"key":"Model","value":"GX160"},{"key":"Berat","value":"11 kg"}]`,
	})

	if !reflect.DeepEqual(p.Features, []string{"a", "b"}) {
		t.Errorf("Features = %v", p.Features)
	}
	if len(p.Specifications) != 2 || p.Specifications[0].Key != "Model" {
		t.Errorf("Specifications = %v, want order preserved", p.Specifications)
	}
	if !reflect.DeepEqual(p.AllImages(), []string{"m.jpg", "x.jpg"}) {
		t.Errorf("AllImages() = %v", p.AllImages())
	}
}

func TestProductFromRow_MalformedJSON(t *testing.T) {
	p := ProductFromRow(store.Product{Features: "not json", ImageUrls: "", Specifications: "{"})

	if p.Features == nil || len(p.Features) != 0 {
		t.Errorf("Features = %#v, want empty slice", p.Features)
	}
	if p.ImageURLs == nil || len(p.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %#v, want empty slice", p.ImageURLs)
	}
	if len(p.Specifications) != 0 {
		t.Errorf("Specifications = %#v, want empty", p.Specifications)
	}
}

func TestDecodeSpecs_ObjectForm(t *testing.T) {
	got := DecodeSpecs(`{"Volume":"20 L","Material":"Rubber body"}`)
	want := []Spec{{Key: "Material", Value: "Rubber body"}, {Key: "Volume", Value: "20 L"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeSpecs() = %v, want %v", got, want)
	}
}

func TestEncodeRoundTripColumns(t *testing.T) {
	if EncodeStrings(nil) != "[]" {
		t.Errorf("EncodeStrings(nil) = %q", EncodeStrings(nil))
	}
	if EncodeSpecs(nil) != "[]" {
		t.Errorf("EncodeSpecs(nil) = %q", EncodeSpecs(nil))
	}
	specs := []Spec{{Key: "B", Value: "2"}, {Key: "A", Value: "1"}}
	if got := DecodeSpecs(EncodeSpecs(specs)); !reflect.DeepEqual(got, specs) {
		t.Errorf("specs order lost: %v", got)
	}
}

func TestAllImages(t *testing.T) {
	tests := []struct {
		name string
		p    Product
		want []string
	}{
		{"empty", Product{}, []string{}},
		{"main only", Product{ImageURL: "a"}, []string{"a"}},
		{"list only", Product{ImageURLs: []string{"a", "b"}}, []string{"a", "b"}},
		{"main duplicated in list", Product{ImageURL: "b", ImageURLs: []string{"a", "b"}}, []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.AllImages(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AllImages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSpecLines(t *testing.T) {
	got := ParseSpecLines("Model: Honda GX690\n\n  Ratio : 9.3 \nnocolon\nModel: GX690\n: orphan value\nURL: http://x:1")
	want := []Spec{
		{Key: "Model", Value: "GX690"},
		{Key: "Ratio", Value: "9.3"},
		{Key: "nocolon", Value: ""},
		{Key: "URL", Value: "http://x:1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSpecLines() = %v, want %v", got, want)
	}
	if SpecLines(want[:2]) != "Model: GX690\nRatio: 9.3" {
		t.Errorf("SpecLines() = %q", SpecLines(want[:2]))
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[string]string{
		"pump":      "Pompa Pemadam",
		"equipment": "Peralatan",
		"aksesori":  "Aksesoris",
		"":          "Aksesoris",
	}
	for slug, want := range tests {
		if got := CategoryLabel(slug); got != want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestGalleryCategoryLabel(t *testing.T) {
	tests := map[string]string{
		"field":    "Field Operations",
		"product":  "Product Showcase",
		"training": "Training",
		"other":    "Training",
	}
	for cat, want := range tests {
		if got := GalleryCategoryLabel(cat); got != want {
			t.Errorf("GalleryCategoryLabel(%q) = %q, want %q", cat, got, want)
		}
	}
}

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"xBCloLkp6vg", "xBCloLkp6vg"},
		{"https://youtu.be/01ESRYH9gfQ", "01ESRYH9gfQ"},
		{"https://www.youtube.com/watch?v=xBCloLkp6vg&t=10", "xBCloLkp6vg"},
		{"https://www.youtube.com/embed/xBCloLkp6vg", "xBCloLkp6vg"},
		{"https://youtube.com/shorts/xBCloLkp6vg", "xBCloLkp6vg"},
		{"https://vimeo.com/12345", ""},
		{"short", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := YouTubeID(tt.in); got != tt.want {
			t.Errorf("YouTubeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGalleryItemURLs(t *testing.T) {
	video := GalleryItem{Type: GalleryVideo, URL: "xBCloLkp6vg"}
	if video.EmbedURL() != "https://www.youtube.com/embed/xBCloLkp6vg" {
		t.Errorf("EmbedURL() = %q", video.EmbedURL())
	}
	if video.ThumbnailURL() != "https://img.youtube.com/vi/xBCloLkp6vg/hqdefault.jpg" {
		t.Errorf("ThumbnailURL() = %q", video.ThumbnailURL())
	}

	photo := GalleryItem{Type: GalleryPhoto, ImageURL: "/p.jpg", URL: "xBCloLkp6vg"}
	if photo.EmbedURL() != "" {
		t.Errorf("photo EmbedURL() = %q, want empty", photo.EmbedURL())
	}
	if photo.ThumbnailURL() != "/p.jpg" {
		t.Errorf("photo ThumbnailURL() = %q", photo.ThumbnailURL())
	}

	if !GalleryPhoto.Valid() || GalleryType("audio").Valid() {
		t.Error("GalleryType.Valid() mismatch")
	}
}
