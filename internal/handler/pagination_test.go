// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"testing"
)

func TestBuildPagination_TotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 9, 1},
		{"less than one page", 5, 9, 1},
		{"exactly one page", 9, 9, 1},
		{"one item over", 10, 9, 2},
		{"multiple pages", 25, 9, 3},
		{"zero per page", 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(1, tt.totalItems, tt.perPage, "/products", nil)
			if p.TotalPages != tt.want {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.want)
			}
		})
	}
}

func TestBuildPagination_ClampsPage(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"valid page", 2, 2},
		{"zero", 0, 1},
		{"negative", -4, 1},
		{"beyond last", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.page, 27, 9, "/products", nil)
			if p.CurrentPage != tt.want {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tt.want)
			}
			if p.HasPrev != (tt.want > 1) {
				t.Errorf("HasPrev = %v for page %d", p.HasPrev, tt.want)
			}
			if p.HasNext != (tt.want < 3) {
				t.Errorf("HasNext = %v for page %d", p.HasNext, tt.want)
			}
		})
	}
}

func TestBuildPagination_PreservesQuery(t *testing.T) {
	q := url.Values{
		"category": {"pump"},
		"q":        {""},
		"page":     {"2"},
	}
	p := BuildPagination(2, 30, 9, "/products", q)

	if p.QueryString != "category=pump" {
		t.Errorf("QueryString = %q, want %q", p.QueryString, "category=pump")
	}
	if got := p.PageURL(1); got != "/products?category=pump" {
		t.Errorf("PageURL(1) = %q", got)
	}
	if got := p.NextURL(); got != "/products?category=pump&page=3" {
		t.Errorf("NextURL() = %q", got)
	}
	if got := p.PrevURL(); got != "/products?category=pump" {
		t.Errorf("PrevURL() = %q", got)
	}
}

func TestBuildPagination_Window(t *testing.T) {
	p := BuildPagination(10, 200, 10, "/admin/products", nil)

	var numbers []int
	ellipses := 0
	for _, pg := range p.Pages {
		if pg.IsEllipsis {
			ellipses++
			continue
		}
		numbers = append(numbers, pg.Number)
	}

	want := []int{1, 8, 9, 10, 11, 12, 20}
	if len(numbers) != len(want) {
		t.Fatalf("pages = %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Fatalf("pages = %v, want %v", numbers, want)
		}
	}
	if ellipses != 2 {
		t.Errorf("ellipses = %d, want 2", ellipses)
	}
	if !p.ShouldShow() {
		t.Error("ShouldShow() = false for 20 pages")
	}
	if BuildPagination(1, 3, 10, "/x", nil).ShouldShow() {
		t.Error("ShouldShow() = true for a single page")
	}
}
