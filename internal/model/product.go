// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/atsaka/atsaka-web/internal/store"
)

// Spec is one specification row. Order is significant.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is the in-app product shape.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Features       []string  `json:"features"`
	ImageURL       string    `json:"imageUrl"`
	ImageURLs      []string  `json:"imageUrls"`
	Specifications []Spec    `json:"specifications"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProductFromRow converts a products row. Malformed JSON columns decode as empty.
func ProductFromRow(row store.Product) Product {
	return Product{
		ID:             row.ID,
		Name:           row.Name,
		Slug:           row.Slug,
		Category:       row.Category,
		Description:    row.Description,
		Features:       DecodeStrings(row.Features),
		ImageURL:       row.ImageUrl,
		ImageURLs:      DecodeStrings(row.ImageUrls),
		Specifications: DecodeSpecs(row.Specifications),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// ProductsFromRows converts a slice of rows.
func ProductsFromRows(rows []store.Product) []Product {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductFromRow(r))
	}
	return out
}

// AllImages returns the main image followed by the other distinct images.
func (p Product) AllImages() []string {
	out := make([]string, 0, len(p.ImageURLs)+1)
	seen := make(map[string]struct{}, len(p.ImageURLs)+1)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	add(p.ImageURL)
	for _, u := range p.ImageURLs {
		add(u)
	}
	return out
}

// CategoryLabel returns the display label for the product's category.
func (p Product) CategoryLabel() string {
	return CategoryLabel(p.Category)
}

// EncodeStrings encodes a string list for a JSON column.
func EncodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeStrings decodes a JSON string list column.
func DecodeStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// EncodeSpecs encodes specifications for a JSON column.
func EncodeSpecs(specs []Spec) string {
	if len(specs) == 0 {
		return "[]"
	}
	b, err := json.Marshal(specs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeSpecs decodes a specifications column. Both the ordered list form
// and a plain JSON object (sorted by key) are accepted.
func DecodeSpecs(raw string) []Spec {
	var list []Spec
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		if list == nil {
			return []Spec{}
		}
		return list
	}

	var obj map[string]string
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return []Spec{}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Spec, 0, len(keys))
	for _, k := range keys {
		out = append(out, Spec{Key: k, Value: obj[k]})
	}
	return out
}

// ParseLines splits text into trimmed, non-empty lines.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseSpecLines parses "Key: Value" lines. Lines without a colon become a
// key with an empty value; a repeated key keeps its first position and the
// last value.
func ParseSpecLines(text string) []Spec {
	var out []Spec
	index := make(map[string]int)
	for _, line := range ParseLines(text) {
		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			out[i].Value = value
			continue
		}
		index[key] = len(out)
		out = append(out, Spec{Key: key, Value: value})
	}
	return out
}

// SpecLines formats specifications back into "Key: Value" lines.
func SpecLines(specs []Spec) string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs {
		lines = append(lines, s.Key+": "+s.Value)
	}
	return strings.Join(lines, "\n")
}
