// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/atsaka/atsaka-web/internal/seo"
	"github.com/atsaka/atsaka-web/internal/service"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	products    *service.ProductService
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates a new SEOHandler. disallowAll blocks every crawler,
// which keeps development instances out of search indexes.
func NewSEOHandler(products *service.ProductService, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{products: products, siteURL: siteURL, disallowAll: disallowAll}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		logAndHTTPError(w, "Service Unavailable", http.StatusServiceUnavailable, "sitemap: loading products", "error", err)
		return
	}

	entries := make([]seo.SitemapProduct, 0, len(products))
	for _, p := range products {
		entries = append(entries, seo.SitemapProduct{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	out, err := seo.GenerateSitemap(h.siteURL, entries)
	if err != nil {
		logAndInternalError(w, "sitemap: building xml", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL, h.disallowAll)))
}
