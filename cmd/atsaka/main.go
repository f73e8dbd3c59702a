// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/atsaka/atsaka-web/internal/cache"
	"github.com/atsaka/atsaka-web/internal/config"
	"github.com/atsaka/atsaka-web/internal/geoip"
	"github.com/atsaka/atsaka-web/internal/handler"
	"github.com/atsaka/atsaka-web/internal/logging"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/scheduler"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/session"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/version"
	"github.com/atsaka/atsaka-web/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ATSAKA - fire protection catalog and admin site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_DB_PATH            SQLite database path (default: ./data/atsaka.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_SITE_URL           Public site URL for sitemap and canonical links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_STORAGE_DIR        Object storage directory (default: ./storage)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_REDIS_URL          Redis URL for the catalog cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_GEOIP_DB_PATH      GeoLite2-Country database (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_ADMIN_EMAIL        Seeded admin email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATSAKA_ADMIN_PASSWORD     Seeded admin password\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Printf("atsaka %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Warnings and errors are also written to the event log from here on.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Catalog:       true,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	objects, err := storage.NewLocalStorage(cfg.StorageDir, cfg.StoragePublicURL, model.Buckets...)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	backing, backend := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL(),
	}, logger)
	defer func() { _ = backing.Close() }()
	slog.Info("catalog cache initialized", "backend", backend)

	// A nil *RedisCache must not end up inside the Pinger interface.
	var cachePinger handler.Pinger
	if rc, ok := backing.(*cache.RedisCache); ok {
		cachePinger = rc
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database unavailable, countries will not be resolved", "error", err)
	}
	defer func() { _ = geo.Close() }()

	catalog := cache.NewCatalogCache(backing, cfg.CacheTTL(), logger)
	uploader := service.NewImageUploader(objects, logger)
	events := service.NewEventService(db, logger)
	products := service.NewProductService(db, uploader, catalog, logger)
	categories := service.NewCategoryService(db, catalog, logger)
	gallery := service.NewGalleryService(db, uploader, catalog, logger)
	contact := service.NewContactService(db, events, geo, logger)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	schedCfg := scheduler.Config{Events: events}
	if cfg.OrphanSweepEnabled {
		schedCfg.Sweeper = service.NewOrphanSweeper(objects, service.DefaultSweepGrace, logger, products, gallery, categories)
		schedCfg.SweepSchedule = cfg.OrphanSweepSchedule
	}
	if cfg.GeoIPEnabled() {
		schedCfg.GeoIP = geo
	}
	sched := scheduler.New(schedCfg, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		DB:              db,
		Sessions:        sessionManager,
		Renderer:        renderer,
		Storage:         objects,
		StaticFS:        staticFS,
		Products:        products,
		Categories:      categories,
		Gallery:         gallery,
		Contact:         contact,
		Events:          events,
		Cache:           cachePinger,
		Version:         info,
		SiteURL:         cfg.SiteURL,
		StorageDir:      cfg.StorageDir,
		CSRFKey:         []byte(cfg.SessionSecret),
		ProductsPerPage: cfg.ProductsPerPage,
		IsDev:           cfg.IsDevelopment(),
		MetricsEnabled:  cfg.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       handler.DefaultUploadTimeout, // image batches on slow links; bodies are capped per route
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      handler.DefaultUploadTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
