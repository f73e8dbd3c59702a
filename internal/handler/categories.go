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

// CategoryForm is the category editor.
type CategoryForm struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=1000"`
	ImageURL    string `form:"image_url" validate:"omitempty,url"`
}

// CategoryFormData is the category editor view model.
type CategoryFormData struct {
	Action   string
	Category model.Category
}

// CategoryListData is the admin category list view model.
type CategoryListData struct {
	Items []model.Category
}

// CategoriesHandler manages product categories.
type CategoriesHandler struct {
	renderer   *render.Renderer
	categories *service.CategoryService
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(renderer *render.Renderer, categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{renderer: renderer, categories: categories}
}

// List handles GET /admin/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		renderUnavailable(w, r, h.renderer, err)
		return
	}
	renderPage(w, r, h.renderer, tmplCategories, render.TemplateData{
		Title: "Kategori",
		Data:  CategoryListData{Items: cats},
	})
}

// NewForm handles GET /admin/categories/new.
func (h *CategoriesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplCategoryFrm, render.TemplateData{
		Title: "Tambah Kategori",
		Data:  CategoryFormData{Action: redirectAdminCategories},
	})
}

// EditForm handles GET /admin/categories/{id}/edit.
func (h *CategoriesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	cat, _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminCategories, "Kategori",
		func(id int64) (model.Category, error) { return h.categories.Get(r.Context(), id) })
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplCategoryFrm, render.TemplateData{
		Title: "Ubah Kategori",
		Data:  CategoryFormData{Action: categoryURL(cat.ID), Category: cat},
	})
}

// Create handles POST /admin/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update handles POST /admin/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminCategories, "Kategori tidak ditemukan")
		return
	}
	h.save(w, r, id)
}

func (h *CategoriesHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	action := redirectAdminCategories
	formURL := redirectAdminCategories + RouteSuffixNew
	if id != 0 {
		action = categoryURL(id)
		formURL = action + "/edit"
	}

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, formURL, msgInvalidForm)
		return
	}
	form := CategoryForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		ImageURL:    strings.TrimSpace(r.PostFormValue("image_url")),
	}

	if errs, ok := validation.AsErrors(validation.Validate(form)); ok {
		renderStatus(w, r, h.renderer, http.StatusUnprocessableEntity, tmplCategoryFrm, render.TemplateData{
			Title:  "Kategori",
			Errors: errs,
			Data: CategoryFormData{
				Action: action,
				Category: model.Category{
					ID:          id,
					Name:        form.Name,
					Description: form.Description,
					ImageURL:    form.ImageURL,
				},
			},
		})
		return
	}

	_, err := h.categories.Save(r.Context(), service.SaveCategoryInput{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		ImageURL:    form.ImageURL,
	})
	if errors.Is(err, service.ErrNotFound) {
		flashError(w, r, h.renderer, redirectAdminCategories, "Kategori tidak ditemukan")
		return
	}
	if err != nil {
		slog.Error("failed to save category", "error", err)
		flashError(w, r, h.renderer, formURL, msgSaveCategoryFailed)
		return
	}

	if id == 0 {
		flashSuccess(w, r, h.renderer, redirectAdminCategories, "Kategori berhasil ditambahkan.")
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminCategories, "Kategori berhasil diperbarui.")
}

// Delete handles POST /admin/categories/{id}/delete.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminCategories, "Kategori tidak ditemukan")
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminCategories, "Kategori tidak ditemukan")
			return
		}
		slog.Error("failed to delete category", "error", err, "id", id)
		flashError(w, r, h.renderer, redirectAdminCategories, msgDeleteFailed)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminCategories, "Kategori berhasil dihapus.")
}

func categoryURL(id int64) string {
	return fmt.Sprintf("%s/%d", redirectAdminCategories, id)
}
