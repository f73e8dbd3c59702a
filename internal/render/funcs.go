// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atsaka/atsaka-web/internal/geoip"
	"github.com/atsaka/atsaka-web/internal/model"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate formats t as "2 Januari 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// FormatDateTime formats t as "2 Januari 2025 14:05".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FormatDate(t) + " " + t.Format("15:04")
}

// Truncate shortens s to n runes, adding an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     FormatDate,
		"formatDateTime": FormatDateTime,
		"truncate":       Truncate,
		"markdown":       Markdown,
		"categoryLabel":  model.CategoryLabel,
		"galleryLabel":   model.GalleryCategoryLabel,
		"countryName":    geoip.CountryName,
		"join":           strings.Join,
		"lines": func(values []string) string {
			return strings.Join(values, "\n")
		},
		"specLines": model.SpecLines,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		"deref": func(p *time.Time) time.Time {
			if p == nil {
				return time.Time{}
			}
			return *p
		},
	}
}
