// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage provides bucket-based object storage with public URLs
// shaped like /storage/v1/object/public/<bucket>/<path>.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"
)

// PublicPathPrefix is the URL path segment that marks an object URL as ours.
const PublicPathPrefix = "/storage/v1/object/public/"

var (
	// ErrObjectExists is returned by Upload when Upsert is false and the object exists.
	ErrObjectExists = errors.New("object already exists")
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrUnknownBucket is returned for buckets the store was not created with.
	ErrUnknownBucket = errors.New("unknown bucket")
)

// UploadInput describes one object write.
type UploadInput struct {
	Bucket      string
	Path        string
	Content     io.Reader
	ContentType string
	Size        int64
	Upsert      bool
}

// UploadResult is returned by a successful upload.
type UploadResult struct {
	Path string
	URL  string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket      string
	Path        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Storage is an object store addressed by bucket and slash-separated path.
type Storage interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	// Delete removes the given objects. Missing objects are not an error.
	Delete(ctx context.Context, bucket string, paths ...string) error
	PublicURL(bucket, objectPath string) string
	Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, *ObjectInfo, error)
	List(ctx context.Context, bucket string) ([]ObjectInfo, error)
}

// BuildPublicURL joins base (may be empty for relative URLs) with the public object path.
func BuildPublicURL(base, bucket, objectPath string) string {
	return strings.TrimSuffix(base, "/") + PublicPathPrefix + bucket + "/" + objectPath
}

// ParsePublicURL extracts bucket and object path from a public object URL.
// URLs without the public prefix, or without both a bucket and a path after
// it, are reported as not ours.
func ParsePublicURL(raw string) (bucket, objectPath string, ok bool) {
	idx := strings.Index(raw, PublicPathPrefix)
	if idx < 0 {
		return "", "", false
	}
	rest := raw[idx+len(PublicPathPrefix):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if unescaped, err := url.PathUnescape(rest); err == nil {
		rest = unescaped
	}

	bucket, objectPath, found := strings.Cut(rest, "/")
	if !found || bucket == "" || objectPath == "" {
		return "", "", false
	}
	return bucket, objectPath, true
}

// contentTypeFor guesses a content type from the object path extension.
func contentTypeFor(objectPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(objectPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
