// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypeJPG  = "image/jpg" // non-standard, sent by some browsers
	MimeTypePNG  = "image/png"
	MimeTypeWebP = "image/webp"
	MimeTypeGIF  = "image/gif"
)

// Storage buckets and the folder each upload flow writes into.
const (
	BucketProductImages = "product-images"
	BucketGalleryImages = "gallery-images"

	FolderProducts = "products"
	FolderGallery  = "gallery"
)

// Buckets lists every bucket the site writes to.
var Buckets = []string{BucketProductImages, BucketGalleryImages}

// Thumbnail defaults used by ThumbnailURL.
const (
	ThumbnailWidth  = 300
	ThumbnailHeight = 300
)
