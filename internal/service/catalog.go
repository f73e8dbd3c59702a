// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/atsaka/atsaka-web/internal/model"
)

// DefaultProductsPerPage is the public listing page size.
const DefaultProductsPerPage = 9

// ProductFilter narrows the public product list. Empty fields match everything.
type ProductFilter struct {
	Category string
	Search   string
}

// IsEmpty reports whether no filter is applied.
func (f ProductFilter) IsEmpty() bool {
	return f.Category == "" && strings.TrimSpace(f.Search) == ""
}

// FilterProducts returns products whose category equals f.Category and whose
// name, description or category contain f.Search, ignoring case. Order is kept.
func FilterProducts(products []model.Product, f ProductFilter) []model.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoryCounts counts products per category slug.
func CategoryCounts(products []model.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

// Page is one page of a list.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Pages lists the page numbers 1..TotalPages.
func (p Page[T]) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Paginate returns the requested 1-based page. The page is clamped to
// [1, TotalPages] and TotalPages is at least 1.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultProductsPerPage
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	if start > len(items) {
		start = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}
