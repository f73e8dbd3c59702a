// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
)

// MessageListData is the inbox view model.
type MessageListData struct {
	Items      []model.ContactMessage
	Pagination Pagination
}

// MessagesHandler serves the contact message inbox.
type MessagesHandler struct {
	renderer *render.Renderer
	contact  *service.ContactService
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(renderer *render.Renderer, contact *service.ContactService) *MessagesHandler {
	return &MessagesHandler{renderer: renderer, contact: contact}
}

// List handles GET /admin/messages.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	items, total, err := h.contact.List(r.Context(), page, adminPerPage)
	if err != nil {
		renderUnavailable(w, r, h.renderer, err)
		return
	}
	renderPage(w, r, h.renderer, tmplMessages, render.TemplateData{
		Title: "Pesan Masuk",
		Data: MessageListData{
			Items:      items,
			Pagination: BuildPagination(page, int(total), adminPerPage, redirectAdminMessages, r.URL.Query()),
		},
	})
}

// MarkRead handles POST /admin/messages/{id}/read.
func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.contact.MarkRead, "Pesan ditandai sudah dibaca.")
}

// Delete handles POST /admin/messages/{id}/delete.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.contact.Delete, "Pesan berhasil dihapus.")
}

func (h *MessagesHandler) act(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error, success string) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMessages, "Pesan tidak ditemukan")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminMessages, "Pesan tidak ditemukan")
			return
		}
		slog.Error("message action failed", "error", err, "id", id)
		flashError(w, r, h.renderer, redirectAdminMessages, "Gagal memproses pesan. Silakan coba lagi.")
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminMessages, success)
}
