// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/atsaka/atsaka-web/internal/util"
)

type memObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// MemoryStorage keeps objects in memory. Buckets are created on first write.
type MemoryStorage struct {
	mu         sync.RWMutex
	publicBase string
	objects    map[string]map[string]memObject

	// Now is used for object timestamps; tests may override it.
	Now func() time.Time
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage(publicBase string) *MemoryStorage {
	return &MemoryStorage{
		publicBase: publicBase,
		objects:    make(map[string]map[string]memObject),
		Now:        time.Now,
	}
}

// Upload stores the object content.
func (m *MemoryStorage) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := util.CleanObjectPath(in.Path)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	ct := in.ContentType
	if ct == "" {
		ct = contentTypeFor(clean)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.objects[in.Bucket]
	if bucket == nil {
		bucket = make(map[string]memObject)
		m.objects[in.Bucket] = bucket
	}
	if _, exists := bucket[clean]; exists && !in.Upsert {
		return nil, fmt.Errorf("%w: %s/%s", ErrObjectExists, in.Bucket, clean)
	}
	bucket[clean] = memObject{data: data, contentType: ct, modTime: m.Now()}

	return &UploadResult{Path: clean, URL: m.PublicURL(in.Bucket, clean)}, nil
}

// Delete removes objects. Missing objects are ignored.
func (m *MemoryStorage) Delete(ctx context.Context, bucket string, paths ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.objects[bucket], p)
	}
	return nil
}

// PublicURL returns the public URL of an object.
func (m *MemoryStorage) PublicURL(bucket, objectPath string) string {
	return BuildPublicURL(m.publicBase, bucket, objectPath)
}

// Open returns the object content.
func (m *MemoryStorage) Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, *ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	m.mu.RLock()
	obj, ok := m.objects[bucket][objectPath]
	m.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), &ObjectInfo{
		Bucket:      bucket,
		Path:        objectPath,
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
		ModTime:     obj.modTime,
	}, nil
}

// List returns the objects in a bucket sorted by path.
func (m *MemoryStorage) List(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ObjectInfo, 0, len(m.objects[bucket]))
	for p, obj := range m.objects[bucket] {
		out = append(out, ObjectInfo{
			Bucket:      bucket,
			Path:        p,
			ContentType: obj.contentType,
			Size:        int64(len(obj.data)),
			ModTime:     obj.modTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Exists reports whether an object is stored.
func (m *MemoryStorage) Exists(bucket, objectPath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[bucket][objectPath]
	return ok
}

// Len returns the number of objects in a bucket.
func (m *MemoryStorage) Len(bucket string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects[bucket])
}
