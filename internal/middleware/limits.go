// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MaxBodySize caps the request body at limit bytes. Reads past the cap fail
// with *http.MaxBytesError.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestTimeout bounds the request context. Multipart posts carry image
// batches and get the longer upload deadline.
func RequestTimeout(standard, upload time.Duration) func(http.Handler) http.Handler {
	short := chimw.Timeout(standard)
	long := chimw.Timeout(upload)
	return func(next http.Handler) http.Handler {
		s, l := short(next), long(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsMultipart(r) {
				l.ServeHTTP(w, r)
				return
			}
			s.ServeHTTP(w, r)
		})
	}
}

// IsMultipart reports whether r posts multipart/form-data.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
