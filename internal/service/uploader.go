// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/atsaka/atsaka-web/internal/imaging"
	"github.com/atsaka/atsaka-web/internal/metrics"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/util"
)

// sniffLen is how many leading bytes are inspected to detect the real type.
const sniffLen = 512

// UploadFile is one file submitted for upload.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FileFromHeader adapts a multipart file header.
func FileFromHeader(fh *multipart.FileHeader) UploadFile {
	return UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// FileFromBytes wraps in-memory content.
func FileFromBytes(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// UploadedImage is a stored upload.
type UploadedImage struct {
	URL  string
	Path string
}

// Progress is reported after each successful upload in a batch.
type Progress struct {
	Loaded     int
	Total      int
	Percentage float64
}

// ImageUploader validates images and writes them to object storage.
type ImageUploader struct {
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewImageUploader creates an uploader over s.
func NewImageUploader(s storage.Storage, logger *slog.Logger) *ImageUploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageUploader{storage: s, logger: logger, now: time.Now}
}

// Validate runs the type and size checks without touching storage.
func (u *ImageUploader) Validate(f UploadFile) error {
	if err := imaging.ValidateImageFile(f.Name, f.ContentType, f.Size); err != nil {
		return &FileError{Name: f.Name, Err: err}
	}
	return nil
}

// ValidateAll splits files into valid ones and per-file rejections.
func (u *ImageUploader) ValidateAll(files []UploadFile) ([]UploadFile, []*FileError) {
	var valid []UploadFile
	var rejected []*FileError
	for _, f := range files {
		if err := u.Validate(f); err != nil {
			var fe *FileError
			errors.As(err, &fe)
			rejected = append(rejected, fe)
			continue
		}
		valid = append(valid, f)
	}
	return valid, rejected
}

// Upload validates f, stores it under folder/<unixMillis>-<uuid>.<ext> and
// returns its public URL. Validation failures never reach storage.
func (u *ImageUploader) Upload(ctx context.Context, f UploadFile, bucket, folder string) (*UploadedImage, error) {
	if err := u.Validate(f); err != nil {
		metrics.ImageUploads.WithLabelValues(bucket, metrics.OutcomeRejected).Inc()
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &FileError{Name: f.Name, Err: fmt.Errorf("opening file: %w", err)}
	}
	defer func() { _ = rc.Close() }()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, &FileError{Name: f.Name, Err: fmt.Errorf("reading file: %w", err)}
	}
	head = head[:n]

	contentType, err := imaging.VerifyContent(head)
	if err != nil {
		metrics.ImageUploads.WithLabelValues(bucket, metrics.OutcomeRejected).Inc()
		return nil, &FileError{Name: f.Name, Err: err}
	}

	objectPath := u.objectPath(folder, f.Name, contentType)
	res, err := u.storage.Upload(ctx, storage.UploadInput{
		Bucket:      bucket,
		Path:        objectPath,
		Content:     io.MultiReader(bytes.NewReader(head), io.LimitReader(rc, imaging.MaxImageSize)),
		ContentType: contentType,
		Size:        f.Size,
		Upsert:      false,
	})
	if err != nil {
		metrics.ImageUploads.WithLabelValues(bucket, metrics.OutcomeFailed).Inc()
		return nil, &FileError{Name: f.Name, Err: fmt.Errorf("uploading: %w", err)}
	}

	metrics.ImageUploads.WithLabelValues(bucket, metrics.OutcomeSuccess).Inc()
	u.logger.Debug("image uploaded", "bucket", bucket, "path", res.Path)
	return &UploadedImage{URL: res.URL, Path: res.Path}, nil
}

// objectPath keeps the submitted extension when it is an image extension,
// otherwise it uses the one implied by the sniffed type.
func (u *ImageUploader) objectPath(folder, name, contentType string) string {
	ext := util.FileExtension(name)
	switch ext {
	case "jpg", "jpeg", "png", "webp":
	default:
		ext = imaging.ExtensionFor(contentType)
	}
	return fmt.Sprintf("%s/%d-%s.%s", folder, u.now().UnixMilli(), uuid.NewString(), ext)
}

// UploadBatch uploads files one at a time. Failed files are logged and
// skipped; onProgress, when set, is called after every success. Results keep
// input order.
func (u *ImageUploader) UploadBatch(ctx context.Context, files []UploadFile, bucket, folder string, onProgress func(Progress)) ([]UploadedImage, []*FileError) {
	results := make([]UploadedImage, 0, len(files))
	var failed []*FileError
	total := len(files)

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			failed = append(failed, &FileError{Name: f.Name, Err: err})
			continue
		}
		img, err := u.Upload(ctx, f, bucket, folder)
		if err != nil {
			u.logger.Warn("image upload failed",
				"file", f.Name, "index", i+1, "error", err, "category", model.EventCategoryStorage)
			var fe *FileError
			if !errors.As(err, &fe) {
				fe = &FileError{Name: f.Name, Err: err}
			}
			failed = append(failed, fe)
			continue
		}
		results = append(results, *img)

		if onProgress != nil {
			loaded := len(results)
			onProgress(Progress{
				Loaded:     loaded,
				Total:      total,
				Percentage: float64(loaded) / float64(total) * 100,
			})
		}
	}
	return results, failed
}

// URLs returns the public URLs of uploaded images.
func URLs(images []UploadedImage) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.URL)
	}
	return out
}

// Delete removes one object.
func (u *ImageUploader) Delete(ctx context.Context, bucket, objectPath string) error {
	return u.storage.Delete(ctx, bucket, objectPath)
}

// DeleteMany removes several objects from one bucket.
func (u *ImageUploader) DeleteMany(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return u.storage.Delete(ctx, bucket, paths...)
}

// DeleteByURLs removes our objects referenced by urls. Foreign URLs are
// skipped. Each failure is logged and counted; none is returned. It returns
// the number of objects removed.
func (u *ImageUploader) DeleteByURLs(ctx context.Context, urls []string) int {
	deleted := 0
	for _, raw := range urls {
		bucket, objectPath, ok := storage.ParsePublicURL(raw)
		if !ok {
			u.logger.Debug("skipping foreign image url", "url", raw)
			continue
		}
		if err := u.storage.Delete(ctx, bucket, objectPath); err != nil {
			metrics.StorageCleanup.WithLabelValues("edit", metrics.OutcomeFailed).Inc()
			u.logger.Warn("failed to delete old image",
				"url", raw, "error", err, "category", model.EventCategoryStorage)
			continue
		}
		metrics.StorageCleanup.WithLabelValues("edit", metrics.OutcomeDeleted).Inc()
		deleted++
	}
	if deleted > 0 {
		u.logger.Info("deleted old images", "count", deleted)
	}
	return deleted
}
