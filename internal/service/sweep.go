// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atsaka/atsaka-web/internal/metrics"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/storage"
)

// DefaultSweepGrace keeps objects uploaded during an in-flight save.
const DefaultSweepGrace = time.Hour

// ReferenceSource lists image URLs that rows still point to.
type ReferenceSource interface {
	ReferencedImageURLs(ctx context.Context) ([]string, error)
}

// SweepResult summarises one sweep.
type SweepResult struct {
	Scanned int
	Deleted int
	Failed  int
}

// OrphanSweeper deletes stored images that no row references.
type OrphanSweeper struct {
	storage storage.Storage
	sources []ReferenceSource
	buckets []string
	grace   time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrphanSweeper creates a sweeper over model.Buckets. grace <= 0 uses DefaultSweepGrace.
func NewOrphanSweeper(s storage.Storage, grace time.Duration, logger *slog.Logger, sources ...ReferenceSource) *OrphanSweeper {
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrphanSweeper{
		storage: s,
		sources: sources,
		buckets: model.Buckets,
		grace:   grace,
		logger:  logger,
		now:     time.Now,
	}
}

// Run performs one sweep. Reference lookups failing abort the sweep before
// anything is deleted.
func (s *OrphanSweeper) Run(ctx context.Context) (SweepResult, error) {
	referenced := make(map[string]struct{})
	for _, src := range s.sources {
		urls, err := src.ReferencedImageURLs(ctx)
		if err != nil {
			return SweepResult{}, fmt.Errorf("collecting referenced images: %w", err)
		}
		for _, u := range urls {
			if bucket, p, ok := storage.ParsePublicURL(u); ok {
				referenced[bucket+"/"+p] = struct{}{}
			}
		}
	}

	var res SweepResult
	cutoff := s.now().Add(-s.grace)
	for _, bucket := range s.buckets {
		objects, err := s.storage.List(ctx, bucket)
		if err != nil {
			return res, fmt.Errorf("listing %s: %w", bucket, err)
		}
		for _, obj := range objects {
			res.Scanned++
			if _, ok := referenced[bucket+"/"+obj.Path]; ok {
				continue
			}
			if obj.ModTime.After(cutoff) {
				continue
			}
			if err := s.storage.Delete(ctx, bucket, obj.Path); err != nil {
				res.Failed++
				metrics.StorageCleanup.WithLabelValues("sweep", metrics.OutcomeFailed).Inc()
				s.logger.Warn("failed to delete orphaned image",
					"bucket", bucket, "path", obj.Path, "error", err, "category", model.EventCategoryStorage)
				continue
			}
			res.Deleted++
			metrics.StorageCleanup.WithLabelValues("sweep", metrics.OutcomeDeleted).Inc()
		}
	}

	s.logger.Info("orphan sweep finished",
		"scanned", res.Scanned, "deleted", res.Deleted, "failed", res.Failed, "category", model.EventCategoryStorage)
	return res, nil
}
