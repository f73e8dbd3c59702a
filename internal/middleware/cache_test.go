// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCacheHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name    string
		handler http.Handler
		want    string
	}{
		{"static one day", StaticCache(86400)(next), "public, max-age=86400"},
		{"static zero", StaticCache(0)(next), "public, max-age=0"},
		{"uploaded objects", ImmutableCache(31536000)(next), "public, max-age=31536000, immutable"},
		{"no store", NoStore(next), "no-store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
			if got := w.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripTrailingSlash(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := StripTrailingSlash(next)

	tests := []struct {
		method   string
		target   string
		wantCode int
		wantLoc  string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/products", http.StatusOK, ""},
		{http.MethodGet, "/products/", http.StatusMovedPermanently, "/products"},
		{http.MethodGet, "/products/?category=pump", http.StatusMovedPermanently, "/products?category=pump"},
		{http.MethodGet, "/gallery//", http.StatusMovedPermanently, "/gallery"},
		{http.MethodPost, "/contact/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
		if w.Code != tt.wantCode {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, w.Code, tt.wantCode)
		}
		if loc := w.Header().Get("Location"); loc != tt.wantLoc {
			t.Errorf("%s %s: Location = %q, want %q", tt.method, tt.target, loc, tt.wantLoc)
		}
	}
}
