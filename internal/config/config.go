// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Placeholder values used when the corresponding variable is not set.
const (
	PlaceholderAdminEmail    = "admin@atsaka.local"
	PlaceholderAdminPassword = "change-me-please"
	PlaceholderSiteURL       = "http://localhost:8080"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"ATSAKA_DB_PATH" envDefault:"./data/atsaka.db"`
	SessionSecret string `env:"ATSAKA_SESSION_SECRET,required"`
	ServerHost    string `env:"ATSAKA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ATSAKA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ATSAKA_ENV" envDefault:"development"`
	LogLevel      string `env:"ATSAKA_LOG_LEVEL" envDefault:"info"`
	SiteURL       string `env:"ATSAKA_SITE_URL" envDefault:"http://localhost:8080"`

	// Object storage
	StorageDir       string `env:"ATSAKA_STORAGE_DIR" envDefault:"./storage"`
	StoragePublicURL string `env:"ATSAKA_STORAGE_PUBLIC_URL"` // Empty means relative URLs

	// Cache configuration
	RedisURL    string `env:"ATSAKA_REDIS_URL"`                        // Optional Redis URL for the catalog cache
	CachePrefix string `env:"ATSAKA_CACHE_PREFIX" envDefault:"atsaka:"` // Redis key prefix
	CacheTTLSec int    `env:"ATSAKA_CACHE_TTL" envDefault:"300"`       // Catalog cache TTL in seconds

	// GeoIP configuration
	GeoIPDBPath string `env:"ATSAKA_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeded admin account
	AdminEmail    string `env:"ATSAKA_ADMIN_EMAIL" envDefault:"admin@atsaka.local"`
	AdminPassword string `env:"ATSAKA_ADMIN_PASSWORD" envDefault:"change-me-please"`

	// Orphaned storage object sweep
	OrphanSweepEnabled  bool   `env:"ATSAKA_ORPHAN_SWEEP_ENABLED" envDefault:"false"`
	OrphanSweepSchedule string `env:"ATSAKA_ORPHAN_SWEEP_SCHEDULE" envDefault:"@daily"`

	ProductsPerPage int  `env:"ATSAKA_PRODUCTS_PER_PAGE" envDefault:"9"`
	MetricsEnabled  bool `env:"ATSAKA_METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTL returns the catalog cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// UsesPlaceholderAdmin reports whether the seeded admin still uses placeholder credentials.
func (c Config) UsesPlaceholderAdmin() bool {
	return c.AdminEmail == PlaceholderAdminEmail || c.AdminPassword == PlaceholderAdminPassword
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ATSAKA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("ATSAKA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ATSAKA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.ProductsPerPage <= 0 {
		cfg.ProductsPerPage = 9
	}
	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")
	if cfg.SiteURL == "" {
		cfg.SiteURL = PlaceholderSiteURL
	}
	cfg.StoragePublicURL = strings.TrimSuffix(cfg.StoragePublicURL, "/")

	if cfg.UsesPlaceholderAdmin() {
		slog.Warn("admin account uses placeholder credentials; set ATSAKA_ADMIN_EMAIL and ATSAKA_ADMIN_PASSWORD")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
