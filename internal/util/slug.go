// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug and object-path helpers shared by the catalog and storage layers.
package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL slug from a display name.
//
// Accents are folded ("Pompa Apung Ü" -> "pompa-apung-u") and other scripts
// are transliterated ("Насос" -> "nasos"). Whitespace runs and underscores
// become hyphens, every other non [a-z0-9-] character is dropped, hyphen runs
// collapse, and leading/trailing hyphens are trimmed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	if !isASCII(result) {
		result = unidecode.Unidecode(result)
	}

	result = strings.ToLower(strings.TrimSpace(result))
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = strings.ReplaceAll(result, "_", "-")
	result = nonSlugChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
