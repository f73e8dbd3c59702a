// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging validates uploaded images and renders resized variants.
package imaging

import (
	"errors"
	"net/http"
	"strings"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/util"
)

// MaxImageSize is the largest accepted upload in bytes.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrInvalidImageType = errors.New("File type not allowed. Please upload JPEG, PNG, or WebP images.")
	ErrImageTooLarge    = errors.New("File size too large. Maximum size is 5MB.")
)

var allowedTypes = map[string]bool{
	model.MimeTypeJPEG: true,
	model.MimeTypeJPG:  true,
	model.MimeTypePNG:  true,
	model.MimeTypeWebP: true,
}

var extensionTypes = map[string]string{
	"jpg":  model.MimeTypeJPEG,
	"jpeg": model.MimeTypeJPEG,
	"png":  model.MimeTypePNG,
	"webp": model.MimeTypeWebP,
	"gif":  model.MimeTypeGIF,
}

// IsAllowedType reports whether contentType may be uploaded.
func IsAllowedType(contentType string) bool {
	return allowedTypes[normalizeType(contentType)]
}

// ResolveContentType returns the declared type, or the type implied by the
// file extension when the declared one is empty or generic.
func ResolveContentType(filename, contentType string) string {
	ct := normalizeType(contentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return extensionTypes[util.FileExtension(filename)]
}

// ValidateImageFile checks type before size so a large GIF reports the type error.
func ValidateImageFile(filename, contentType string, size int64) error {
	if !IsAllowedType(ResolveContentType(filename, contentType)) {
		return ErrInvalidImageType
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// DetectMimeType sniffs the content type from the first bytes of data.
func DetectMimeType(data []byte) string {
	return normalizeType(http.DetectContentType(data))
}

// VerifyContent sniffs head and returns the detected type if it is allowed.
func VerifyContent(head []byte) (string, error) {
	ct := DetectMimeType(head)
	if !IsAllowedType(ct) {
		return "", ErrInvalidImageType
	}
	return ct, nil
}

// ExtensionFor returns the canonical file extension for an allowed type.
func ExtensionFor(contentType string) string {
	switch normalizeType(contentType) {
	case model.MimeTypeJPEG, model.MimeTypeJPG:
		return "jpg"
	case model.MimeTypePNG:
		return "png"
	case model.MimeTypeWebP:
		return "webp"
	default:
		return ""
	}
}

func normalizeType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
