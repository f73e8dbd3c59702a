// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atsaka/atsaka-web/internal/service"
)

type fakeSweeper struct {
	runs atomic.Int32
	err  error
}

func (f *fakeSweeper) Run(context.Context) (service.SweepResult, error) {
	f.runs.Add(1)
	return service.SweepResult{Scanned: 3, Deleted: 1}, f.err
}

type fakePruner struct {
	retention time.Duration
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 2, nil
}

type fakeReloader struct {
	calls int
}

func (f *fakeReloader) Reload() (bool, error) {
	f.calls++
	return f.calls == 1, nil
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, slog.Default())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.cfg.SweepSchedule != "@daily" {
		t.Errorf("SweepSchedule = %q, want @daily", s.cfg.SweepSchedule)
	}
	if s.cfg.EventRetention != service.DefaultEventRetention {
		t.Errorf("EventRetention = %v, want %v", s.cfg.EventRetention, service.DefaultEventRetention)
	}
}

func TestScheduler_RegistersConfiguredJobs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"none", Config{}, 0},
		{"retention only", Config{Events: &fakePruner{}}, 1},
		{"all", Config{Sweeper: &fakeSweeper{}, Events: &fakePruner{}, GeoIP: &fakeReloader{}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.cfg, slog.Default())
			if err := s.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			defer s.Stop()

			if got := len(s.cron.Entries()); got != tt.want {
				t.Errorf("entries = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduler_InvalidSweepSchedule(t *testing.T) {
	s := New(Config{Sweeper: &fakeSweeper{}, SweepSchedule: "not a schedule"}, slog.Default())
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("Start() accepted an invalid schedule")
	}
}

func TestScheduler_Jobs(t *testing.T) {
	sweeper := &fakeSweeper{}
	pruner := &fakePruner{}
	reloader := &fakeReloader{}
	s := New(Config{
		Sweeper:        sweeper,
		Events:         pruner,
		EventRetention: 48 * time.Hour,
		GeoIP:          reloader,
	}, slog.Default())

	s.sweepOrphans()
	sweeper.err = errors.New("storage offline")
	s.sweepOrphans()
	if got := sweeper.runs.Load(); got != 2 {
		t.Errorf("sweeper runs = %d, want 2", got)
	}

	s.pruneEvents()
	if pruner.retention != 48*time.Hour {
		t.Errorf("retention = %v, want 48h", pruner.retention)
	}

	s.reloadGeoIP()
	s.reloadGeoIP()
	if reloader.calls != 2 {
		t.Errorf("reload calls = %d, want 2", reloader.calls)
	}
}
