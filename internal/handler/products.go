// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/validation"
)

// ProductForm holds the validated scalar fields of the product editor.
type ProductForm struct {
	Name     string `form:"name" validate:"required,max=200"`
	Category string `form:"category" validate:"required,max=100"`
	ImageURL string `form:"image_url" validate:"omitempty,url"`
}

// ProductFormData is the product editor view model.
type ProductFormData struct {
	Action        string
	Product       model.Product
	Categories    []model.Category
	FeaturesText  string
	SpecsText     string
	ImageURLsText string
	IsEdit        bool
}

// ProductListData is the admin product list view model.
type ProductListData struct {
	Items      []model.Product
	Pagination Pagination
}

// ProductsHandler manages products in the admin area.
type ProductsHandler struct {
	renderer   *render.Renderer
	products   *service.ProductService
	categories *service.CategoryService
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(renderer *render.Renderer, products *service.ProductService, categories *service.CategoryService) *ProductsHandler {
	return &ProductsHandler{
		renderer:   renderer,
		products:   products,
		categories: categories,
	}
}

// List handles GET /admin/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		renderUnavailable(w, r, h.renderer, err)
		return
	}

	page := service.Paginate(products, pageParam(r), adminPerPage)
	renderPage(w, r, h.renderer, tmplAdminProds, render.TemplateData{
		Title: "Produk",
		Data: ProductListData{
			Items:      page.Items,
			Pagination: BuildPagination(page.Page, page.TotalItems, page.PerPage, redirectAdminProducts, r.URL.Query()),
		},
	})
}

// NewForm handles GET /admin/products/new.
func (h *ProductsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, ProductFormData{
		Action:  redirectAdminProducts,
		Product: model.Product{Category: model.CategoryPump},
	}, nil)
}

// EditForm handles GET /admin/products/{id}/edit.
func (h *ProductsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	product, _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminProducts, "Produk",
		func(id int64) (model.Product, error) { return h.products.GetByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, http.StatusOK, ProductFormData{
		Action:       productURL(product.ID),
		Product:      product,
		FeaturesText: strings.Join(product.Features, "\n"),
		SpecsText:    model.SpecLines(product.Specifications),
		IsEdit:       true,
	}, nil)
}

func (h *ProductsHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data ProductFormData, errs validation.Errors) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		slog.Warn("loading categories for product form", "error", err)
	}
	data.Categories = cats

	title := "Tambah Produk"
	if data.IsEdit {
		title = "Ubah Produk"
	}
	renderStatus(w, r, h.renderer, status, tmplProductForm, render.TemplateData{
		Title:  title,
		Errors: errs,
		Data:   data,
	})
}

// Create handles POST /admin/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, nil)
}

// Update handles POST /admin/products/{id}.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	product, _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminProducts, "Produk",
		func(id int64) (model.Product, error) { return h.products.GetByID(r.Context(), id) })
	if !ok {
		return
	}
	h.save(w, r, &product)
}

func (h *ProductsHandler) save(w http.ResponseWriter, r *http.Request, existing *model.Product) {
	formURL := redirectAdminProducts + RouteSuffixNew
	if existing != nil {
		formURL = productURL(existing.ID) + "/edit"
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("parsing product form", "error", err)
		flashError(w, r, h.renderer, formURL, formErrorMessage(err))
		return
	}

	form := ProductForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
		ImageURL: strings.TrimSpace(r.PostFormValue("image_url")),
	}
	description := r.PostFormValue("description")
	featuresText := r.PostFormValue("features")
	specsText := r.PostFormValue("specifications")
	urlsText := r.PostFormValue("image_urls_text")

	errs := validation.Errors{}
	if fieldErrs, ok := validation.AsErrors(validation.Validate(form)); ok {
		errs = fieldErrs
	}

	var manualURLs []string
	if strings.TrimSpace(urlsText) != "" {
		urls, err := service.ParseImageURLs(urlsText)
		var invalid *service.InvalidURLsError
		switch {
		case errors.As(err, &invalid):
			errs.Add("image_urls_text", "URL tidak valid: "+strings.Join(invalid.URLs, ", "))
		case errors.Is(err, service.ErrNoImageURLs):
			errs.Add("image_urls_text", "Masukkan setidaknya satu URL gambar yang valid.")
		}
		manualURLs = urls
	}

	if len(errs) > 0 {
		data := ProductFormData{
			Action:        redirectAdminProducts,
			FeaturesText:  featuresText,
			SpecsText:     specsText,
			ImageURLsText: urlsText,
			Product: model.Product{
				Name:        form.Name,
				Category:    form.Category,
				Description: description,
				ImageURL:    form.ImageURL,
			},
		}
		if existing != nil {
			data.Action = productURL(existing.ID)
			data.IsEdit = true
			data.Product.ID = existing.ID
			data.Product.ImageURLs = existing.ImageURLs
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, data, errs)
		return
	}

	in := service.SaveProductInput{
		Name:           form.Name,
		Category:       form.Category,
		Description:    description,
		Features:       model.ParseLines(featuresText),
		Specifications: model.ParseSpecLines(specsText),
		Files:          uploadedFiles(r, "images"),
		ManualURLs:     manualURLs,
		ImageURL:       form.ImageURL,
	}
	if existing != nil {
		in.ID = existing.ID
	}

	res, err := h.products.Save(r.Context(), in)
	if errors.Is(err, service.ErrNotFound) {
		flashError(w, r, h.renderer, redirectAdminProducts, "Produk tidak ditemukan")
		return
	}
	if err != nil {
		slog.Error("failed to save product", "error", err, "category", model.EventCategoryProduct)
		flashError(w, r, h.renderer, formURL, msgSaveProductFailed)
		return
	}

	msg := "Produk berhasil diperbarui."
	if res.Created {
		msg = "Produk berhasil ditambahkan."
	}
	if len(res.Rejected) > 0 {
		flashError(w, r, h.renderer, redirectAdminProducts, msg+" "+rejectedSummary(res.Rejected))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminProducts, msg)
}

// Delete handles POST /admin/products/{id}/delete.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminProducts, "Produk tidak ditemukan")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminProducts, "Produk tidak ditemukan")
			return
		}
		slog.Error("failed to delete product", "error", err, "id", id)
		flashError(w, r, h.renderer, redirectAdminProducts, msgDeleteFailed)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminProducts, "Produk berhasil dihapus.")
}

func productURL(id int64) string {
	return fmt.Sprintf("%s/%d", redirectAdminProducts, id)
}

// uploadedFiles collects the non-empty files posted under field.
func uploadedFiles(r *http.Request, field string) []service.UploadFile {
	if r.MultipartForm == nil {
		return nil
	}
	var files []service.UploadFile
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		files = append(files, service.FileFromHeader(fh))
	}
	return files
}

// rejectedSummary lists rejected uploads as "File <name>: <error>" lines.
func rejectedSummary(rejected []*service.FileError) string {
	msgs := make([]string, 0, len(rejected))
	for _, fe := range rejected {
		msgs = append(msgs, fe.Error())
	}
	return "Beberapa file ditolak: " + strings.Join(msgs, "; ")
}
