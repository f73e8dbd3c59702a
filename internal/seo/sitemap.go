// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt documents.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapProduct is a product detail page entry.
type SitemapProduct struct {
	Slug      string
	UpdatedAt time.Time
}

// StaticPages are the fixed public pages after the homepage.
var StaticPages = []string{"/products", "/about", "/gallery", "/contact"}

// SitemapBuilder builds sitemap XML.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. A trailing slash on siteURL is dropped.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "1.0",
	})
}

// AddStaticPages adds the fixed public pages.
func (b *SitemapBuilder) AddStaticPages() {
	for _, p := range StaticPages {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + p,
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.8",
		})
	}
}

// AddProduct adds a product detail page.
func (b *SitemapBuilder) AddProduct(p SitemapProduct) {
	url := SitemapURL{
		Loc:        b.siteURL + "/products/" + p.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.7",
	}
	if !p.UpdatedAt.IsZero() {
		url.LastMod = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddProducts adds multiple products.
func (b *SitemapBuilder) AddProducts(products []SitemapProduct) {
	for _, p := range products {
		b.AddProduct(p)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the full sitemap for the site.
func GenerateSitemap(siteURL string, products []SitemapProduct) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddStaticPages()
	builder.AddProducts(products)
	return builder.Build()
}
