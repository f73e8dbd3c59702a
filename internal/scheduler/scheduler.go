// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/service"
)

// jobTimeout bounds a single job run.
const jobTimeout = 10 * time.Minute

// Sweeper removes stored objects no row references.
type Sweeper interface {
	Run(ctx context.Context) (service.SweepResult, error)
}

// EventPruner deletes old event log rows.
type EventPruner interface {
	DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

// Reloader reopens a file-backed database when it changed on disk.
type Reloader interface {
	Reload() (bool, error)
}

// Config selects the jobs to run. Nil dependencies disable their job.
type Config struct {
	Sweeper       Sweeper
	SweepSchedule string

	Events         EventPruner
	EventRetention time.Duration

	GeoIP Reloader
}

// Scheduler wraps a cron instance with the maintenance jobs.
type Scheduler struct {
	cfg    Config
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler. Jobs are registered by Start.
func New(cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@daily"
	}
	if cfg.EventRetention <= 0 {
		cfg.EventRetention = service.DefaultEventRetention
	}
	return &Scheduler{
		cfg:    cfg,
		cron:   cron.New(cron.WithLogger(cron.DiscardLogger)),
		logger: logger,
	}
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.cfg.Sweeper != nil {
		if _, err := s.cron.AddFunc(s.cfg.SweepSchedule, s.sweepOrphans); err != nil {
			return err
		}
	}
	if s.cfg.Events != nil {
		if _, err := s.cron.AddFunc("@daily", s.pruneEvents); err != nil {
			return err
		}
	}
	if s.cfg.GeoIP != nil {
		if _, err := s.cron.AddFunc("@daily", s.reloadGeoIP); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	res, err := s.cfg.Sweeper.Run(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed", "error", err, "category", model.EventCategoryStorage)
		return
	}
	level := slog.LevelInfo
	if res.Failed > 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "orphan sweep finished",
		"scanned", res.Scanned,
		"deleted", res.Deleted,
		"failed", res.Failed,
		"category", model.EventCategoryStorage,
	)
}

func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.cfg.Events.DeleteOlderThan(ctx, s.cfg.EventRetention)
	if err != nil {
		s.logger.Error("event retention failed", "error", err, "category", model.EventCategorySystem)
		return
	}
	if n > 0 {
		s.logger.Info("old events deleted", "count", n, "retention", s.cfg.EventRetention.String())
	}
}

func (s *Scheduler) reloadGeoIP() {
	reloaded, err := s.cfg.GeoIP.Reload()
	if err != nil {
		s.logger.Warn("geoip reload failed", "error", err, "category", model.EventCategorySystem)
		return
	}
	if reloaded {
		s.logger.Info("geoip database reloaded")
	}
}
