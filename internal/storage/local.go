// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atsaka/atsaka-web/internal/util"
)

// LocalStorage stores objects on disk under root/<bucket>/<path>.
type LocalStorage struct {
	root       string
	publicBase string
	buckets    map[string]struct{}
}

// NewLocalStorage creates the root and one directory per bucket.
func NewLocalStorage(root, publicBase string, buckets ...string) (*LocalStorage, error) {
	s := &LocalStorage{
		root:       root,
		publicBase: publicBase,
		buckets:    make(map[string]struct{}, len(buckets)),
	}
	for _, b := range buckets {
		dir, err := util.SafeJoinPath(root, b)
		if err != nil {
			return nil, fmt.Errorf("bucket %q: %w", b, err)
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", b, err)
		}
		s.buckets[b] = struct{}{}
	}
	return s, nil
}

func (s *LocalStorage) resolve(bucket, objectPath string) (string, string, error) {
	if _, ok := s.buckets[bucket]; !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	clean, err := util.CleanObjectPath(objectPath)
	if err != nil {
		return "", "", err
	}
	full, err := util.SafeJoinPath(filepath.Join(s.root, bucket), filepath.FromSlash(clean))
	if err != nil {
		return "", "", err
	}
	return clean, full, nil
}

// Upload writes the object. Without Upsert an existing object is left untouched.
func (s *LocalStorage) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, full, err := s.resolve(in.Bucket, in.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !in.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0o640)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrObjectExists, in.Bucket, clean)
		}
		return nil, fmt.Errorf("opening object: %w", err)
	}

	if _, err := io.Copy(f, in.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return nil, fmt.Errorf("writing object: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("closing object: %w", err)
	}

	return &UploadResult{Path: clean, URL: s.PublicURL(in.Bucket, clean)}, nil
}

// Delete removes objects, ignoring ones that are already gone.
func (s *LocalStorage) Delete(ctx context.Context, bucket string, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, full, err := s.resolve(bucket, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// PublicURL returns the public URL of an object.
func (s *LocalStorage) PublicURL(bucket, objectPath string) string {
	return BuildPublicURL(s.publicBase, bucket, objectPath)
}

// Open returns a reader for an object. The caller closes it.
func (s *LocalStorage) Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, *ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	clean, full, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}
	return f, &ObjectInfo{
		Bucket:      bucket,
		Path:        clean,
		ContentType: contentTypeFor(clean),
		Size:        st.Size(),
		ModTime:     st.ModTime(),
	}, nil
}

// List walks a bucket and returns every object in it.
func (s *LocalStorage) List(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	if _, ok := s.buckets[bucket]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	base := filepath.Join(s.root, bucket)

	var out []ObjectInfo
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		out = append(out, ObjectInfo{
			Bucket:      bucket,
			Path:        rel,
			ContentType: contentTypeFor(rel),
			Size:        info.Size(),
			ModTime:     info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing bucket %s: %w", bucket, err)
	}
	return out, nil
}
