// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/url"
	"testing"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		want        error
	}{
		{"jpeg ok", "a.jpg", "image/jpeg", 1024, nil},
		{"jpg alias ok", "a.jpg", "image/jpg", 1024, nil},
		{"png ok", "a.png", "image/png", 1024, nil},
		{"webp ok", "a.webp", "image/webp", 1024, nil},
		{"exactly 5MB ok", "a.png", "image/png", MaxImageSize, nil},
		{"6MB too large", "big.jpg", "image/jpeg", 6 * 1024 * 1024, ErrImageTooLarge},
		{"gif rejected", "anim.gif", "image/gif", 1024, ErrInvalidImageType},
		{"large gif reports type first", "anim.gif", "image/gif", 6 * 1024 * 1024, ErrInvalidImageType},
		{"pdf rejected", "doc.pdf", "application/pdf", 10, ErrInvalidImageType},
		{"generic type resolved from extension", "a.webp", "application/octet-stream", 10, nil},
		{"empty type resolved from extension", "a.PNG", "", 10, nil},
		{"empty type unknown extension", "a.bin", "", 10, ErrInvalidImageType},
		{"type with params", "a.jpg", "image/jpeg; charset=binary", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageFile(tt.filename, tt.contentType, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateImageFile() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	if ErrInvalidImageType.Error() != "File type not allowed. Please upload JPEG, PNG, or WebP images." {
		t.Errorf("unexpected type message: %q", ErrInvalidImageType.Error())
	}
	if ErrImageTooLarge.Error() != "File size too large. Maximum size is 5MB." {
		t.Errorf("unexpected size message: %q", ErrImageTooLarge.Error())
	}
}

func TestVerifyContent(t *testing.T) {
	ct, err := VerifyContent(encodePNG(t, createTestImage(4, 4)))
	if err != nil || ct != "image/png" {
		t.Errorf("png: got (%q, %v)", ct, err)
	}

	if _, err := VerifyContent([]byte("GIF89a......")); !errors.Is(err, ErrInvalidImageType) {
		t.Errorf("gif: err = %v, want ErrInvalidImageType", err)
	}
	if _, err := VerifyContent([]byte("<html><body>hi</body></html>")); !errors.Is(err, ErrInvalidImageType) {
		t.Errorf("html: err = %v, want ErrInvalidImageType", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/jpeg": "jpg",
		"image/jpg":  "jpg",
		"image/png":  "png",
		"image/webp": "webp",
		"image/gif":  "",
	}
	for in, want := range tests {
		if got := ExtensionFor(in); got != want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTransform(t *testing.T) {
	src := encodeJPEG(t, createTestImage(200, 100))

	tests := []struct {
		name  string
		opts  Options
		wantW int
		wantH int
	}{
		{"no resize", Options{}, 200, 100},
		{"cover crops to box", Options{Width: 50, Height: 50, Resize: ResizeCover}, 50, 50},
		{"contain fits inside box", Options{Width: 50, Height: 50, Resize: ResizeContain}, 50, 25},
		{"fill stretches", Options{Width: 40, Height: 60, Resize: ResizeFill}, 40, 60},
		{"width only keeps ratio", Options{Width: 100}, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ct, err := Transform(bytes.NewReader(src), tt.opts)
			if err != nil {
				t.Fatalf("Transform error: %v", err)
			}
			if ct != "image/jpeg" {
				t.Errorf("content type = %q, want image/jpeg", ct)
			}
			cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("DecodeConfig: %v", err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTransform_PNGStaysPNG(t *testing.T) {
	out, ct, err := Transform(bytes.NewReader(encodePNG(t, createTestImage(20, 20))), Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output is not png: %v", err)
	}
}

func TestTransform_RejectsUnsupported(t *testing.T) {
	_, _, err := Transform(bytes.NewReader([]byte("plain text, not an image")), Options{})
	if !errors.Is(err, ErrInvalidImageType) {
		t.Errorf("err = %v, want ErrInvalidImageType", err)
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(url.Values{"width": {"300"}, "height": {"200"}, "resize": {"contain"}})
	if err != nil {
		t.Fatalf("ParseOptions error: %v", err)
	}
	if opts.Width != 300 || opts.Height != 200 || opts.Resize != ResizeContain {
		t.Errorf("unexpected options: %+v", opts)
	}

	opts, err = ParseOptions(url.Values{"resize": {"bogus"}})
	if err != nil {
		t.Fatalf("ParseOptions error: %v", err)
	}
	if !opts.IsZero() || opts.Resize != ResizeCover {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	for _, bad := range []url.Values{
		{"width": {"abc"}},
		{"height": {"-1"}},
		{"width": {"5000"}},
	} {
		if _, err := ParseOptions(bad); err == nil {
			t.Errorf("ParseOptions(%v) expected error", bad)
		}
	}
}

func TestThumbnailURL(t *testing.T) {
	own := "/storage/v1/object/public/product-images/products/1-a.jpg"
	if got := ThumbnailURL(own, 0, 0); got != own+"?width=300&height=300&resize=cover" {
		t.Errorf("ThumbnailURL(own) = %q", got)
	}
	if got := ThumbnailURL(own+"?v=1", 100, 80); got != own+"?v=1&width=100&height=80&resize=cover" {
		t.Errorf("ThumbnailURL(own with query) = %q", got)
	}

	foreign := "https://images.tokopedia.net/img/a.jpg"
	if got := ThumbnailURL(foreign, 300, 300); got != foreign {
		t.Errorf("foreign URL should be unchanged, got %q", got)
	}
	if got := ThumbnailURL("", 300, 300); got != "" {
		t.Errorf("empty URL should stay empty, got %q", got)
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(20, 10)
	for orientation, want := range map[int][2]int{1: {20, 10}, 3: {20, 10}, 6: {10, 20}, 8: {10, 20}} {
		b := applyOrientation(img, orientation).Bounds()
		if b.Dx() != want[0] || b.Dy() != want[1] {
			t.Errorf("orientation %d: got %dx%d, want %dx%d", orientation, b.Dx(), b.Dy(), want[0], want[1])
		}
	}
}
