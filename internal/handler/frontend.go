// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atsaka/atsaka-web/internal/imaging"
	"github.com/atsaka/atsaka-web/internal/middleware"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/validation"
)

// homeHighlights is how many products the home page features.
const homeHighlights = 3

// FrontendHandler serves the public marketing and catalog pages.
type FrontendHandler struct {
	renderer   *render.Renderer
	products   *service.ProductService
	categories *service.CategoryService
	gallery    *service.GalleryService
	contact    *service.ContactService
	perPage    int
	siteURL    string
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(
	renderer *render.Renderer,
	products *service.ProductService,
	categories *service.CategoryService,
	gallery *service.GalleryService,
	contact *service.ContactService,
	perPage int,
	siteURL string,
) *FrontendHandler {
	if perPage <= 0 {
		perPage = service.DefaultProductsPerPage
	}
	return &FrontendHandler{
		renderer:   renderer,
		products:   products,
		categories: categories,
		gallery:    gallery,
		contact:    contact,
		perPage:    perPage,
		siteURL:    strings.TrimSuffix(siteURL, "/"),
	}
}

func (h *FrontendHandler) canonical(r *http.Request) string {
	if h.siteURL == "" {
		return ""
	}
	return h.siteURL + r.URL.Path
}

// HomeData is the home page view model.
type HomeData struct {
	Features     []model.Feature
	Statistics   []model.Statistic
	Products     []model.Product
	Testimonials []model.TestimonialItem
	LoadError    bool
	RetryURL     string
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{
		Features:     model.Features,
		Statistics:   model.Statistics,
		Testimonials: model.Testimonials,
	}

	status := http.StatusOK
	products, err := h.products.Recent(r.Context(), homeHighlights)
	if err != nil {
		slog.Error("loading product highlights", "error", err)
		status = http.StatusServiceUnavailable
		data.LoadError = true
		data.RetryURL = r.URL.RequestURI()
	}
	data.Products = products

	renderStatus(w, r, h.renderer, status, tmplHome, render.TemplateData{
		Description:  "ATSAKA: pompa pemadam, peralatan dan aksesoris pemadam kebakaran hutan buatan Indonesia.",
		CanonicalURL: h.canonical(r),
		Data:         data,
	})
}

// CategoryOption is one entry of the product filter sidebar.
type CategoryOption struct {
	Slug   string
	Label  string
	Count  int
	Active bool
}

// ProductsData is the product listing view model.
type ProductsData struct {
	Items      []model.Product
	Pagination Pagination
	Categories []CategoryOption
	Category   string
	Search     string
	Total      int
	LoadError  bool
	RetryURL   string
}

// Products handles GET /products?category=&search=&page=.
func (h *FrontendHandler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	data := ProductsData{Category: filter.Category, Search: filter.Search}
	td := render.TemplateData{
		Title:        "Produk",
		Description:  "Katalog pompa pemadam, peralatan dan aksesoris ATSAKA.",
		CanonicalURL: h.canonical(r),
	}

	products, err := h.products.List(r.Context())
	if err != nil {
		slog.Error("loading products", "error", err)
		data.LoadError = true
		data.RetryURL = r.URL.RequestURI()
		td.Data = data
		renderStatus(w, r, h.renderer, http.StatusServiceUnavailable, tmplProducts, td)
		return
	}

	data.Total = len(products)
	data.Categories = h.categoryOptions(r, products, filter.Category)

	page := service.Paginate(service.FilterProducts(products, filter), pageParam(r), h.perPage)
	data.Items = page.Items
	data.Pagination = BuildPagination(page.Page, page.TotalItems, page.PerPage, RouteProducts, q)

	td.Data = data
	renderPage(w, r, h.renderer, tmplProducts, td)
}

// categoryOptions lists the fixed catalog categories first, then any other
// category found on a product, each with its product count.
func (h *FrontendHandler) categoryOptions(r *http.Request, products []model.Product, active string) []CategoryOption {
	counts := service.CategoryCounts(products)

	names := make(map[string]string)
	if cats, err := h.categories.List(r.Context()); err != nil {
		slog.Warn("loading category names", "error", err)
	} else {
		for _, c := range cats {
			names[c.Slug] = c.Name
		}
	}

	slugs := []string{model.CategoryPump, model.CategoryEquipment, model.CategoryAccessory}
	seen := map[string]bool{}
	for _, s := range slugs {
		seen[s] = true
	}
	var extra []string
	for slug := range counts {
		if !seen[slug] && slug != "" {
			extra = append(extra, slug)
		}
	}
	sort.Strings(extra)
	slugs = append(slugs, extra...)

	out := make([]CategoryOption, 0, len(slugs))
	for _, slug := range slugs {
		label := model.CategoryLabel(slug)
		if !isFixedCategory(slug) {
			label = slug
			if name, ok := names[slug]; ok {
				label = name
			}
		}
		out = append(out, CategoryOption{
			Slug:   slug,
			Label:  label,
			Count:  counts[slug],
			Active: slug == active,
		})
	}
	return out
}

func isFixedCategory(slug string) bool {
	return slug == model.CategoryPump || slug == model.CategoryEquipment || slug == model.CategoryAccessory
}

// ProductImage pairs a full image with its thumbnail.
type ProductImage struct {
	Full  string
	Thumb string
}

// ProductData is the product detail view model.
type ProductData struct {
	Product    model.Product
	Thumbnails []ProductImage
	Related    []model.Product
}

// Product handles GET /products/{slug}.
func (h *FrontendHandler) Product(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(w, r, h.renderer)
		return
	}
	if err != nil {
		renderUnavailable(w, r, h.renderer, err)
		return
	}

	images := product.AllImages()
	thumbs := make([]ProductImage, 0, len(images))
	for _, u := range images {
		thumbs = append(thumbs, ProductImage{
			Full:  u,
			Thumb: imaging.ThumbnailURL(u, model.ThumbnailWidth, model.ThumbnailHeight),
		})
	}

	var related []model.Product
	if all, err := h.products.List(r.Context()); err == nil {
		for _, p := range all {
			if p.ID != product.ID && p.Category == product.Category {
				related = append(related, p)
				if len(related) == homeHighlights {
					break
				}
			}
		}
	}

	renderPage(w, r, h.renderer, tmplProduct, render.TemplateData{
		Title:        product.Name,
		Description:  render.Truncate(product.Description, 155),
		CanonicalURL: h.canonical(r),
		Data: ProductData{
			Product:    product,
			Thumbnails: thumbs,
			Related:    related,
		},
	})
}

// AboutData is the about page view model.
type AboutData struct {
	Timeline   []model.TimelineEvent
	Statistics []model.Statistic
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplAbout, render.TemplateData{
		Title:        "Tentang Kami",
		Description:  "Sejarah, misi dan visi ATSAKA sejak 2010.",
		CanonicalURL: h.canonical(r),
		Data: AboutData{
			Timeline:   model.Timeline,
			Statistics: model.Statistics,
		},
	})
}

// GalleryOption is one gallery category tab.
type GalleryOption struct {
	Value  string
	Label  string
	Active bool
}

// GalleryData is the gallery view model.
type GalleryData struct {
	Items      []model.GalleryItem
	Categories []GalleryOption
	Active     string
	LoadError  bool
	RetryURL   string
}

// Gallery handles GET /gallery?category=.
func (h *FrontendHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	active := strings.TrimSpace(r.URL.Query().Get("category"))
	data := GalleryData{Active: active}
	td := render.TemplateData{
		Title:        "Galeri",
		Description:  "Dokumentasi lapangan, produk dan pelatihan ATSAKA.",
		CanonicalURL: h.canonical(r),
	}

	items, err := h.gallery.List(r.Context())
	if err != nil {
		slog.Error("loading gallery", "error", err)
		data.LoadError = true
		data.RetryURL = r.URL.RequestURI()
		td.Data = data
		renderStatus(w, r, h.renderer, http.StatusServiceUnavailable, tmplGallery, td)
		return
	}

	for _, c := range service.Categories(items) {
		data.Categories = append(data.Categories, GalleryOption{
			Value:  c,
			Label:  model.GalleryCategoryLabel(c),
			Active: c == active,
		})
	}
	data.Items = service.FilterGallery(items, active)

	td.Data = data
	renderPage(w, r, h.renderer, tmplGallery, td)
}

// ContactData is the contact page view model.
type ContactData struct {
	Form service.ContactInput
	Info model.ContactInfo
}

// ContactForm handles GET /contact. ?subject= prefills the subject line.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplContact, render.TemplateData{
		Title:        "Kontak",
		Description:  "Hubungi tim ATSAKA untuk penawaran dan konsultasi produk.",
		CanonicalURL: h.canonical(r),
		Data: ContactData{
			Form: service.ContactInput{Subject: render.Truncate(r.URL.Query().Get("subject"), 200)},
			Info: model.Contact,
		},
	})
}

// ContactSubmit handles POST /contact.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectContact, msgInvalidForm)
		return
	}

	in := contactInputFromForm(r.PostForm)
	meta := service.RequestMeta{IP: middleware.ClientIP(r), UserAgent: r.UserAgent()}

	_, err := h.contact.Submit(r.Context(), in, meta)
	if fieldErrs, ok := validation.AsErrors(err); ok {
		renderStatus(w, r, h.renderer, http.StatusUnprocessableEntity, tmplContact, render.TemplateData{
			Title:  "Kontak",
			Errors: fieldErrs,
			Data:   ContactData{Form: in, Info: model.Contact},
		})
		return
	}
	if err != nil {
		slog.Error("contact submission failed", "error", err, "category", model.EventCategoryContact)
		flashError(w, r, h.renderer, redirectContact, "Gagal mengirim pesan. Silakan coba lagi.")
		return
	}

	flashSuccess(w, r, h.renderer, redirectContact, "Terima kasih! Pesan Anda telah terkirim. Tim kami akan segera menghubungi Anda.")
}

func contactInputFromForm(form url.Values) service.ContactInput {
	return service.ContactInput{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Phone:   form.Get("phone"),
		Company: form.Get("company"),
		Subject: form.Get("subject"),
		Message: form.Get("message"),
	}
}

// NotFound renders the 404 page for unmatched routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer)
}
