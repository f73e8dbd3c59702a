// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/service"
)

func TestAdmin_CategoryCRUD(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	ctx := context.Background()

	resp, _ := app.postForm(t, "/admin/categories", url.Values{
		"name":        {"Pompa Pemadam"},
		"description": {"Pompa diesel dan elektrik"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := app.get(t, "/admin/categories")
	assert.Contains(t, body, "Kategori berhasil ditambahkan.")
	assert.Contains(t, body, "Pompa Pemadam")

	cats, err := app.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	id := cats[0].ID

	resp, _ = app.get(t, fmt.Sprintf("/admin/categories/%d/edit", id))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = app.postForm(t, fmt.Sprintf("/admin/categories/%d", id), url.Values{"name": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `class="field-error"`)

	resp, _ = app.postForm(t, fmt.Sprintf("/admin/categories/%d", id), url.Values{"name": {"Pompa Hydrant"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	got, err := app.categories.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pompa Hydrant", got.Name)

	resp, _ = app.postForm(t, fmt.Sprintf("/admin/categories/%d/delete", id), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	count, err := app.categories.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	resp, _ = app.get(t, "/admin/categories/999/edit")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/categories", resp.Header.Get("Location"))
}

func TestAdmin_GalleryRules(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	resp, body := app.postForm(t, "/admin/gallery", url.Values{
		"title":    {"Instalasi Hydrant"},
		"type":     {string(model.GalleryPhoto)},
		"category": {model.GalleryCategoryField},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, service.ErrGalleryImageRequired.Error())

	resp, body = app.postForm(t, "/admin/gallery", url.Values{
		"title":    {"Video Pelatihan"},
		"type":     {string(model.GalleryVideo)},
		"category": {model.GalleryCategoryTraining},
		"url":      {"bukan video"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, service.ErrInvalidVideo.Error())

	resp, _ = app.postForm(t, "/admin/gallery", url.Values{
		"title":    {"Video Pelatihan"},
		"type":     {string(model.GalleryVideo)},
		"category": {model.GalleryCategoryTraining},
		"url":      {"https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = app.postForm(t, "/admin/gallery", url.Values{
		"title":     {"Instalasi Hydrant"},
		"type":      {string(model.GalleryPhoto)},
		"category":  {model.GalleryCategoryField},
		"image_url": {"https://cdn.atsaka.test/hydrant.jpg"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = app.get(t, "/gallery")
	assert.Contains(t, body, "Video Pelatihan")
	assert.Contains(t, body, "Instalasi Hydrant")

	_, body = app.get(t, "/gallery?category="+model.GalleryCategoryTraining)
	assert.Contains(t, body, "Video Pelatihan")
	assert.NotContains(t, body, "Instalasi Hydrant")
}

func TestAdmin_Messages(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	msg, err := app.contact.Submit(ctx, service.ContactInput{
		Name:    "Siti",
		Email:   "siti@example.com",
		Message: "Butuh servis sprinkler.",
	}, service.RequestMeta{IP: "127.0.0.1", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)

	app.login(t)
	_, body := app.get(t, "/admin/messages")
	assert.Contains(t, body, "siti@example.com")

	unread, err := app.contact.CountUnread(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	resp, _ := app.postForm(t, fmt.Sprintf("/admin/messages/%d/read", msg.ID), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	unread, err = app.contact.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	resp, _ = app.postForm(t, fmt.Sprintf("/admin/messages/%d/delete", msg.ID), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = app.get(t, "/admin/messages")
	assert.Contains(t, body, "Pesan berhasil dihapus.")
	assert.NotContains(t, body, "siti@example.com")

	resp, _ = app.postForm(t, fmt.Sprintf("/admin/messages/%d/delete", msg.ID), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = app.get(t, "/admin/messages")
	assert.Contains(t, body, "Pesan tidak ditemukan")
	assert.NotContains(t, body, "Pesan berhasil dihapus.")

	resp, _ = app.postForm(t, fmt.Sprintf("/admin/messages/%d/read", msg.ID), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = app.get(t, "/admin/messages")
	assert.Contains(t, body, "Pesan tidak ditemukan")
	assert.NotContains(t, body, "Pesan ditandai sudah dibaca.")
}

func TestAdmin_MessagesPageClamped(t *testing.T) {
	app := newTestApp(t)
	_, err := app.contact.Submit(context.Background(), service.ContactInput{
		Name:    "Siti",
		Email:   "siti@example.com",
		Message: "Butuh servis sprinkler.",
	}, service.RequestMeta{})
	require.NoError(t, err)

	app.login(t)
	resp, body := app.get(t, "/admin/messages?page=9223372036854775807")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "siti@example.com")
}

func TestAdmin_Dashboard(t *testing.T) {
	app := newTestApp(t)
	app.addProduct(t, "Fire Extinguisher APAR 6kg", model.CategoryEquipment)
	app.login(t)

	resp, body := app.get(t, "/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Fire Extinguisher APAR 6kg")
}
