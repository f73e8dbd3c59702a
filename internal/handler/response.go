// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
)

// flashAndRedirect sets a flash message and redirects with 303 See Other.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// renderPage renders name with status 200, falling back to a plain 500 on template errors.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	renderStatus(w, r, renderer, http.StatusOK, name, data)
}

// renderStatus renders name with status. A failing page falls back to the
// error page, and a failing error page to plain text.
func renderStatus(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	err := renderer.RenderStatus(w, r, status, name, data)
	if err == nil {
		return
	}
	slog.Error("template render failed", "template", name, "error", err)
	if name != tmplServerError {
		if err := renderer.RenderStatus(w, r, http.StatusInternalServerError, tmplServerError, render.TemplateData{Title: "Terjadi Kesalahan"}); err == nil {
			return
		}
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// renderNotFound renders the 404 page.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	renderStatus(w, r, renderer, http.StatusNotFound, tmplNotFound, render.TemplateData{Title: "Halaman Tidak Ditemukan"})
}

// renderUnavailable renders the retry page with 503 after a failed read.
func renderUnavailable(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, err error) {
	slog.Error("read failed", "path", r.URL.Path, "error", err)
	renderStatus(w, r, renderer, http.StatusServiceUnavailable, tmplUnavailable, render.TemplateData{
		Title: "Data Tidak Tersedia",
		Data:  r.URL.RequestURI(),
	})
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// parseIDParam reads the {id} URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// requireEntityWithRedirect loads an entity by the {id} parameter. A bad id or
// missing entity flashes an error and redirects to redirectURL.
func requireEntityWithRedirect[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	redirectURL string,
	entityName string,
	queryFn func(id int64) (T, error),
) (T, int64, bool) {
	var zero T
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, renderer, redirectURL, entityName+" tidak ditemukan")
		return zero, 0, false
	}
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, renderer, redirectURL, entityName+" tidak ditemukan")
		} else {
			slog.Error("failed to load "+entityName, "error", err, "id", id)
			flashError(w, r, renderer, redirectURL, "Gagal memuat "+entityName+".")
		}
		return zero, id, false
	}
	return entity, id, true
}

// pageParam reads a 1-based ?page= value.
// formErrorMessage picks the flash shown when a posted form cannot be parsed.
func formErrorMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return msgUploadTooLarge
	}
	return msgInvalidForm
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
