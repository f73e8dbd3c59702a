// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atsaka/atsaka-web/internal/metrics"
	"github.com/atsaka/atsaka-web/internal/middleware"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/theme"
	"github.com/atsaka/atsaka-web/internal/version"
)

// Cache lifetimes in seconds.
const (
	staticMaxAge  = 31536000
	storageMaxAge = 604800
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	DB              *sql.DB
	Sessions        *scs.SessionManager
	Renderer        *render.Renderer
	Storage         storage.Storage
	StaticFS        fs.FS
	Products        *service.ProductService
	Categories      *service.CategoryService
	Gallery         *service.GalleryService
	Contact         *service.ContactService
	Events          *service.EventService
	Cache           Pinger
	Version         version.Info
	SiteURL         string
	StorageDir      string
	CSRFKey         []byte
	ProductsPerPage int
	IsDev           bool
	MetricsEnabled  bool
	// RequestTimeout bounds each request; zero uses 60s.
	RequestTimeout  time.Duration
	// UploadTimeout bounds multipart posts; zero uses DefaultUploadTimeout.
	UploadTimeout   time.Duration
}

// DefaultUploadTimeout leaves room for a batch of images over a slow link.
const DefaultUploadTimeout = 5 * time.Minute

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers: GET base, GET base/new, POST base,
// GET base/{id}/edit, POST base/{id}, POST base/{id}/delete.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + RouteParamID
	r.Get(base, h.List)
	r.Get(base+RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID+"/edit", h.EditForm)
	r.Post(baseID, h.Update)
	r.Post(baseID+"/delete", h.Delete)
}

// NewRouter builds the application's HTTP handler.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout == 0 {
		uploadTimeout = DefaultUploadTimeout
	}

	frontend := NewFrontendHandler(cfg.Renderer, cfg.Products, cfg.Categories, cfg.Gallery, cfg.Contact, cfg.ProductsPerPage, cfg.SiteURL)
	themeHandler := NewThemeHandler(!cfg.IsDev)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	authHandler := NewAuthHandler(cfg.DB, cfg.Renderer, cfg.Sessions, cfg.Events, loginProtection)
	adminHandler := NewAdminHandler(cfg.Renderer, cfg.Products, cfg.Categories, cfg.Gallery, cfg.Contact, cfg.Events)
	productsHandler := NewProductsHandler(cfg.Renderer, cfg.Products, cfg.Categories)
	categoriesHandler := NewCategoriesHandler(cfg.Renderer, cfg.Categories)
	galleryHandler := NewGalleryHandler(cfg.Renderer, cfg.Gallery)
	messagesHandler := NewMessagesHandler(cfg.Renderer, cfg.Contact)
	storageHandler := NewStorageHandler(cfg.Storage)
	healthHandler := NewHealthHandler(cfg.DB, cfg.Sessions, cfg.StorageDir, cfg.Cache, cfg.Version)
	seoHandler := NewSEOHandler(cfg.Products, cfg.SiteURL, cfg.IsDev)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDev))
	contactLimiter := middleware.NewIPRateLimiter(0.2, 5)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.RequestTimeout(timeout, uploadTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))
	r.Use(middleware.RequestPath)
	r.Use(cfg.Sessions.LoadAndSave)
	r.Use(theme.Middleware)

	// Health, crawler and metrics endpoints.
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Static assets and stored objects. Object paths are never reused, so
	// their responses can be cached as immutable.
	if cfg.StaticFS != nil {
		r.Handle("/static/*", middleware.StaticCache(staticMaxAge)(
			http.StripPrefix("/static/", http.FileServer(http.FS(cfg.StaticFS)))))
	}
	r.With(middleware.ImmutableCache(storageMaxAge)).Get(RouteStorage, storageHandler.Object)

	// Public pages.
	r.Get(RouteRoot, frontend.Home)
	r.Get(RouteProducts, frontend.Products)
	r.Get(RouteProducts+RouteParamSlug, frontend.Product)
	r.Get(RouteAbout, frontend.About)
	r.Get(RouteGallery, frontend.Gallery)
	r.Get(RouteContact, frontend.ContactForm)

	// Public form posts.
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.MaxBodySize(maxFormBody))
		r.With(contactLimiter.Middleware()).Post(RouteContact, frontend.ContactSubmit)
		r.Post(RouteTheme, themeHandler.Toggle)
	})

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(csrfMiddleware)
		r.Use(middleware.MaxBodySize(maxUploadBody))

		r.Get(RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Sessions))
			r.Use(middleware.LoadUser(cfg.Sessions, cfg.DB))

			r.Get(RouteRoot, adminHandler.Dashboard)
			r.Post(RouteLogout, authHandler.Logout)

			registerCRUD(r, RouteProducts, crudHandlers{
				List:     productsHandler.List,
				NewForm:  productsHandler.NewForm,
				Create:   productsHandler.Create,
				EditForm: productsHandler.EditForm,
				Update:   productsHandler.Update,
				Delete:   productsHandler.Delete,
			})
			registerCRUD(r, RouteCategories, crudHandlers{
				List:     categoriesHandler.List,
				NewForm:  categoriesHandler.NewForm,
				Create:   categoriesHandler.Create,
				EditForm: categoriesHandler.EditForm,
				Update:   categoriesHandler.Update,
				Delete:   categoriesHandler.Delete,
			})
			registerCRUD(r, RouteGallery, crudHandlers{
				List:     galleryHandler.List,
				NewForm:  galleryHandler.NewForm,
				Create:   galleryHandler.Create,
				EditForm: galleryHandler.EditForm,
				Update:   galleryHandler.Update,
				Delete:   galleryHandler.Delete,
			})

			r.Get(RouteMessages, messagesHandler.List)
			r.Post(RouteMessages+RouteParamID+"/read", messagesHandler.MarkRead)
			r.Post(RouteMessages+RouteParamID+"/delete", messagesHandler.Delete)
		})
	})

	r.NotFound(frontend.NotFound)

	return r
}
