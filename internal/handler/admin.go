// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers for the public site and the
// admin area.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
)

// Dashboard list sizes.
const (
	dashboardRecent   = 5
	dashboardProblems = 10
)

// DashboardData holds the counters and recent activity shown on /admin.
type DashboardData struct {
	ProductCount   int64
	CategoryCount  int64
	GalleryCount   int64
	UnreadCount    int64
	RecentProducts []model.Product
	Messages       []model.ContactMessage
	Problems       []service.Event
}

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	renderer   *render.Renderer
	products   *service.ProductService
	categories *service.CategoryService
	gallery    *service.GalleryService
	contact    *service.ContactService
	events     *service.EventService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	renderer *render.Renderer,
	products *service.ProductService,
	categories *service.CategoryService,
	gallery *service.GalleryService,
	contact *service.ContactService,
	events *service.EventService,
) *AdminHandler {
	return &AdminHandler{
		renderer:   renderer,
		products:   products,
		categories: categories,
		gallery:    gallery,
		contact:    contact,
		events:     events,
	}
}

// Dashboard renders the admin dashboard. A failed counter is logged and
// shown as zero so one broken table does not hide the rest.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data DashboardData
	var err error

	if data.ProductCount, err = h.products.Count(ctx); err != nil {
		slog.Error("failed to count products", "error", err)
	}
	if data.CategoryCount, err = h.categories.Count(ctx); err != nil {
		slog.Error("failed to count categories", "error", err)
	}
	if data.GalleryCount, err = h.gallery.Count(ctx); err != nil {
		slog.Error("failed to count gallery items", "error", err)
	}
	if data.UnreadCount, err = h.contact.CountUnread(ctx); err != nil {
		slog.Error("failed to count unread messages", "error", err)
	}
	if data.RecentProducts, err = h.products.Recent(ctx, dashboardRecent); err != nil {
		slog.Error("failed to load recent products", "error", err)
	}
	if data.Messages, _, err = h.contact.List(ctx, 1, dashboardRecent); err != nil {
		slog.Error("failed to load recent messages", "error", err)
	}
	if h.events != nil {
		if data.Problems, err = h.events.ListProblems(ctx, dashboardProblems); err != nil {
			slog.Error("failed to load problem events", "error", err)
		}
	}

	renderPage(w, r, h.renderer, tmplDashboard, render.TemplateData{
		Title: "Dasbor",
		Data:  data,
	})
}
