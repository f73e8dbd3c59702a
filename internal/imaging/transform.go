// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/storage"
)

// ResizeMode controls how an image is fitted into the requested box.
type ResizeMode string

const (
	ResizeCover   ResizeMode = "cover"
	ResizeContain ResizeMode = "contain"
	ResizeFill    ResizeMode = "fill"
)

// MaxDimension caps requested transform sizes.
const MaxDimension = 2000

// Options describe a transform. A zero Width or Height keeps the aspect ratio.
type Options struct {
	Width   int
	Height  int
	Resize  ResizeMode
	Quality int
}

// IsZero reports whether no resize was requested.
func (o Options) IsZero() bool {
	return o.Width == 0 && o.Height == 0
}

// ParseOptions reads width, height and resize from query values.
// Unknown resize modes fall back to cover.
func ParseOptions(q url.Values) (Options, error) {
	var opts Options
	var err error
	if opts.Width, err = parseDimension(q.Get("width")); err != nil {
		return Options{}, fmt.Errorf("width: %w", err)
	}
	if opts.Height, err = parseDimension(q.Get("height")); err != nil {
		return Options{}, fmt.Errorf("height: %w", err)
	}
	switch mode := ResizeMode(q.Get("resize")); mode {
	case ResizeContain, ResizeFill:
		opts.Resize = mode
	default:
		opts.Resize = ResizeCover
	}
	return opts, nil
}

func parseDimension(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxDimension {
		return 0, fmt.Errorf("must be between 0 and %d", MaxDimension)
	}
	return n, nil
}

// Transform decodes an image, applies EXIF orientation and resizes it.
// WebP sources are re-encoded as JPEG. It returns the encoded bytes and their type.
func Transform(r io.Reader, opts Options) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, "", ErrImageTooLarge
	}

	format := detectFormat(data)
	if format == "" {
		return nil, "", ErrInvalidImageType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))
	img = resize(img, opts)

	quality := opts.Quality
	if quality <= 0 {
		quality = 85
	}

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encoding png: %w", err)
		}
		return buf.Bytes(), model.MimeTypePNG, nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), model.MimeTypeJPEG, nil
}

func resize(img image.Image, opts Options) image.Image {
	if opts.IsZero() {
		return img
	}
	w, h := opts.Width, opts.Height
	if w == 0 || h == 0 {
		return imaging.Resize(img, w, h, imaging.Lanczos)
	}
	switch opts.Resize {
	case ResizeContain:
		return imaging.Fit(img, w, h, imaging.Lanczos)
	case ResizeFill:
		return imaging.Resize(img, w, h, imaging.Lanczos)
	default:
		return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	}
}

// ThumbnailURL adds transform parameters to one of our object URLs.
// Foreign URLs and empty strings are returned unchanged. Zero sizes use 300x300.
func ThumbnailURL(raw string, width, height int) string {
	if raw == "" {
		return raw
	}
	if _, _, ok := storage.ParsePublicURL(raw); !ok {
		return raw
	}
	if width <= 0 {
		width = model.ThumbnailWidth
	}
	if height <= 0 {
		height = model.ThumbnailHeight
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%swidth=%d&height=%d&resize=%s", raw, sep, width, height, ResizeCover)
}

func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation maps EXIF orientation values 2-8 onto flips and rotations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// detectFormat rejects anything but jpeg, png and webp, TIFF included.
func detectFormat(data []byte) string {
	switch DetectMimeType(data) {
	case model.MimeTypeJPEG:
		return "jpeg"
	case model.MimeTypePNG:
		return "png"
	case model.MimeTypeWebP:
		return "webp"
	default:
		return ""
	}
}
