// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/atsaka/atsaka-web/internal/cache"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/testutil"
)

var errStorageDown = errors.New("storage unavailable")

// recordingStorage wraps MemoryStorage and counts calls.
type recordingStorage struct {
	*storage.MemoryStorage

	mu         sync.Mutex
	uploads    int
	deletes    int
	failUpload bool
	failDelete bool
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{MemoryStorage: storage.NewMemoryStorage("")}
}

func (r *recordingStorage) Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	r.mu.Lock()
	r.uploads++
	fail := r.failUpload
	r.mu.Unlock()
	if fail {
		_, _ = io.Copy(io.Discard, in.Content)
		return nil, errStorageDown
	}
	return r.MemoryStorage.Upload(ctx, in)
}

func (r *recordingStorage) Delete(ctx context.Context, bucket string, paths ...string) error {
	r.mu.Lock()
	r.deletes++
	fail := r.failDelete
	r.mu.Unlock()
	if fail {
		return errStorageDown
	}
	return r.MemoryStorage.Delete(ctx, bucket, paths...)
}

func (r *recordingStorage) calls() (uploads, deletes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads, r.deletes
}

func newTestCatalog() *cache.CatalogCache {
	return cache.NewCatalogCache(cache.NewMemoryCache(time.Minute, 0), time.Minute, testutil.TestLogger())
}

// failingOpen is an UploadFile opener that must never be reached.
func failingOpen(t *testing.T) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		t.Error("file was opened although validation should have rejected it")
		return nil, errors.New("unexpected open")
	}
}
