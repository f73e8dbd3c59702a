// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/web"
)

func TestLogAndHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
		logMsg     string
	}{
		{"bad request", "Bad Request", http.StatusBadRequest, "validation failed"},
		{"not found", "Not Found", http.StatusNotFound, "resource missing"},
		{"internal error", "Internal Server Error", http.StatusInternalServerError, "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			logAndHTTPError(w, tt.message, tt.statusCode, tt.logMsg)

			if w.Code != tt.statusCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.statusCode)
			}

			body := w.Body.String()
			if body == "" {
				t.Error("body should not be empty")
			}
		})
	}
}

func TestLogAndInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	logAndInternalError(w, "database connection failed", "error", errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		id      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.id)
		req := httptest.NewRequest(http.MethodGet, "/admin/products/"+tt.id+"/edit", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		got, err := parseIDParam(req)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIDParam(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIDParam(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestPageParam(t *testing.T) {
	tests := map[string]int{
		"":          1,
		"?page=3":   3,
		"?page=0":   1,
		"?page=-2":  1,
		"?page=abc": 1,
	}
	for query, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
		if got := pageParam(req); got != want {
			t.Errorf("pageParam(%q) = %d, want %d", query, got, want)
		}
	}
}

func TestFormErrorMessage(t *testing.T) {
	body, contentType := buildMultipart(t, map[string]string{"name": "Pompa"}, multipartFile{
		field:       "images",
		name:        "besar.jpg",
		contentType: "image/jpeg",
		data:        make([]byte, 4096),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 1024)

	err := req.ParseMultipartForm(maxUploadMemory)
	if err == nil {
		t.Fatal("expected oversized body to fail")
	}
	if got := formErrorMessage(err); got != msgUploadTooLarge {
		t.Errorf("formErrorMessage(%v) = %q, want %q", err, got, msgUploadTooLarge)
	}
	if got := formErrorMessage(errors.New("malformed")); got != msgInvalidForm {
		t.Errorf("formErrorMessage(malformed) = %q, want %q", got, msgInvalidForm)
	}
}

func TestRenderStatus_FallsBackToErrorPage(t *testing.T) {
	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templates})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	renderStatus(w, req, renderer, http.StatusOK, "public/does-not-exist", render.TemplateData{})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "Terjadi Kesalahan") {
		t.Error("expected the server error page")
	}
}
