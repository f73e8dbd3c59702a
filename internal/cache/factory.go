// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"

	"github.com/atsaka/atsaka-web/internal/model"
)

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the cache backend.
type Config struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New returns a Redis cache when RedisURL is set and reachable, otherwise a
// memory cache. A failed Redis connection is logged and never fatal.
func New(cfg Config, logger *slog.Logger) (Cache, string) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			logger.Info("catalog cache using redis", "prefix", cfg.Prefix)
			return rc, BackendRedis
		}
		logger.Warn("redis unavailable, falling back to memory cache",
			"error", err, "category", model.EventCategoryCache)
	}

	return NewMemoryCache(cfg.DefaultTTL, time.Minute), BackendMemory
}
