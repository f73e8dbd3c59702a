// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atsaka/atsaka-web/internal/imaging"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/util"
)

// StorageHandler serves public objects, optionally resized.
type StorageHandler struct {
	store storage.Storage
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(s storage.Storage) *StorageHandler {
	return &StorageHandler{store: s}
}

// Object handles GET /storage/v1/object/public/{bucket}/*.
// width, height and resize query parameters request a transformed copy.
func (h *StorageHandler) Object(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	objectPath, err := util.CleanObjectPath(chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	opts, err := imaging.ParseOptions(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid transform: "+err.Error(), http.StatusBadRequest)
		return
	}

	rc, info, err := h.store.Open(r.Context(), bucket, objectPath)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrUnknownBucket) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logAndInternalError(w, "opening object", "bucket", bucket, "path", objectPath, "error", err)
		return
	}
	defer func() { _ = rc.Close() }()

	if opts.IsZero() {
		w.Header().Set("Content-Type", info.ContentType)
		if rs, ok := rc.(io.ReadSeeker); ok {
			http.ServeContent(w, r, objectPath, info.ModTime, rs)
			return
		}
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		_, _ = io.Copy(w, rc)
		return
	}

	data, contentType, err := imaging.Transform(rc, opts)
	if err != nil {
		slog.Warn("image transform failed", "bucket", bucket, "path", objectPath, "error", err)
		http.Error(w, "Cannot transform object", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, objectPath, info.ModTime, bytes.NewReader(data))
}
