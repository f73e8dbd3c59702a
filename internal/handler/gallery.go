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

// GalleryForm holds the validated scalar fields of the gallery editor.
type GalleryForm struct {
	Title    string `form:"title" validate:"required,max=200"`
	Type     string `form:"type" validate:"required,oneof=photo video"`
	Category string `form:"category" validate:"required,oneof=field product training"`
}

// GalleryFormData is the gallery editor view model.
type GalleryFormData struct {
	Action     string
	Item       model.GalleryItem
	Categories []GalleryOption
}

// GalleryListData is the admin gallery list view model.
type GalleryListData struct {
	Items []model.GalleryItem
}

var galleryCategories = []string{
	model.GalleryCategoryField,
	model.GalleryCategoryProduct,
	model.GalleryCategoryTraining,
}

// GalleryHandler manages gallery photos and videos.
type GalleryHandler struct {
	renderer *render.Renderer
	gallery  *service.GalleryService
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(renderer *render.Renderer, gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{renderer: renderer, gallery: gallery}
}

// List handles GET /admin/gallery.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.gallery.List(r.Context())
	if err != nil {
		renderUnavailable(w, r, h.renderer, err)
		return
	}
	renderPage(w, r, h.renderer, tmplAdminGall, render.TemplateData{
		Title: "Galeri",
		Data:  GalleryListData{Items: items},
	})
}

// NewForm handles GET /admin/gallery/new.
func (h *GalleryHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	item := model.GalleryItem{Type: model.GalleryPhoto, Category: model.GalleryCategoryField}
	h.renderForm(w, r, http.StatusOK, redirectAdminGallery, item, nil)
}

// EditForm handles GET /admin/gallery/{id}/edit.
func (h *GalleryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	item, _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminGallery, "Item galeri",
		func(id int64) (model.GalleryItem, error) { return h.gallery.Get(r.Context(), id) })
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, galleryURL(item.ID), item, nil)
}

func (h *GalleryHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, action string, item model.GalleryItem, errs validation.Errors) {
	opts := make([]GalleryOption, 0, len(galleryCategories))
	for _, c := range galleryCategories {
		opts = append(opts, GalleryOption{
			Value:  c,
			Label:  model.GalleryCategoryLabel(c),
			Active: c == item.Category,
		})
	}

	title := "Tambah Item Galeri"
	if item.ID != 0 {
		title = "Ubah Item Galeri"
	}
	renderStatus(w, r, h.renderer, status, tmplGalleryForm, render.TemplateData{
		Title:  title,
		Errors: errs,
		Data:   GalleryFormData{Action: action, Item: item, Categories: opts},
	})
}

// Create handles POST /admin/gallery.
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update handles POST /admin/gallery/{id}.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminGallery, "Item galeri tidak ditemukan")
		return
	}
	h.save(w, r, id)
}

func (h *GalleryHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	action := redirectAdminGallery
	formURL := redirectAdminGallery + RouteSuffixNew
	if id != 0 {
		action = galleryURL(id)
		formURL = action + "/edit"
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("parsing gallery form", "error", err)
		flashError(w, r, h.renderer, formURL, formErrorMessage(err))
		return
	}

	form := GalleryForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Type:     strings.TrimSpace(r.PostFormValue("type")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
	}
	item := model.GalleryItem{
		ID:          id,
		Title:       form.Title,
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Type:        model.GalleryType(form.Type),
		Category:    form.Category,
		URL:         strings.TrimSpace(r.PostFormValue("url")),
		ImageURL:    strings.TrimSpace(r.PostFormValue("image_url")),
	}

	if errs, ok := validation.AsErrors(validation.Validate(form)); ok {
		h.renderForm(w, r, http.StatusUnprocessableEntity, action, item, errs)
		return
	}

	in := service.SaveGalleryInput{
		ID:          id,
		Title:       item.Title,
		Description: item.Description,
		Type:        item.Type,
		Category:    item.Category,
		VideoURL:    item.URL,
		ImageURL:    item.ImageURL,
	}
	if files := uploadedFiles(r, "image"); len(files) > 0 {
		in.File = &files[0]
	}

	_, err := h.gallery.Save(r.Context(), in)
	if err != nil {
		errs := validation.Errors{}
		var fe *service.FileError
		switch {
		case errors.Is(err, service.ErrNotFound):
			flashError(w, r, h.renderer, redirectAdminGallery, "Item galeri tidak ditemukan")
			return
		case errors.As(err, &fe):
			errs.Add("image", fe.Error())
		case errors.Is(err, service.ErrGalleryImageRequired):
			errs.Add("image", err.Error())
		case errors.Is(err, service.ErrInvalidVideo):
			errs.Add("url", err.Error())
		case errors.Is(err, service.ErrInvalidGalleryType):
			errs.Add("type", err.Error())
		default:
			slog.Error("failed to save gallery item", "error", err, "category", model.EventCategoryGallery)
			flashError(w, r, h.renderer, formURL, msgSaveGalleryFailed)
			return
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, action, item, errs)
		return
	}

	if id == 0 {
		flashSuccess(w, r, h.renderer, redirectAdminGallery, "Item galeri berhasil ditambahkan.")
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminGallery, "Item galeri berhasil diperbarui.")
}

// Delete handles POST /admin/gallery/{id}/delete.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminGallery, "Item galeri tidak ditemukan")
		return
	}
	if err := h.gallery.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminGallery, "Item galeri tidak ditemukan")
			return
		}
		slog.Error("failed to delete gallery item", "error", err, "id", id)
		flashError(w, r, h.renderer, redirectAdminGallery, msgDeleteFailed)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminGallery, "Item galeri berhasil dihapus.")
}

func galleryURL(id int64) string {
	return fmt.Sprintf("%s/%d", redirectAdminGallery, id)
}
