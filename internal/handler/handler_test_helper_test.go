// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atsaka/atsaka-web/internal/cache"
	"github.com/atsaka/atsaka-web/internal/geoip"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/session"
	"github.com/atsaka/atsaka-web/internal/storage"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/testutil"
	"github.com/atsaka/atsaka-web/internal/version"
	"github.com/atsaka/atsaka-web/web"
)

const (
	testAdminEmail    = "admin@atsaka.test"
	testAdminPassword = "rahasia-sekali-123"
	testSiteURL       = "https://atsaka.test"
)

// testApp is a fully wired router served over a real listener so cookies
// round-trip through a jar.
type testApp struct {
	server     *httptest.Server
	client     *http.Client
	storage    *storage.MemoryStorage
	products   *service.ProductService
	categories *service.CategoryService
	gallery    *service.GalleryService
	contact    *service.ContactService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(context.Background(), db, store.SeedOptions{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}))

	logger := testutil.TestLogger()
	sm := session.New(db, true)

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm})
	require.NoError(t, err)

	static, err := fs.Sub(web.Static, "static")
	require.NoError(t, err)

	mem := storage.NewMemoryStorage("")
	catalog := cache.NewCatalogCache(cache.NewMemoryCache(time.Minute, 0), time.Minute, logger)
	uploader := service.NewImageUploader(mem, logger)
	events := service.NewEventService(db, logger)
	geo, err := geoip.Open("")
	require.NoError(t, err)

	app := &testApp{
		storage:    mem,
		products:   service.NewProductService(db, uploader, catalog, logger),
		categories: service.NewCategoryService(db, catalog, logger),
		gallery:    service.NewGalleryService(db, uploader, catalog, logger),
		contact:    service.NewContactService(db, events, geo, logger),
	}

	router := NewRouter(RouterConfig{
		DB:              db,
		Sessions:        sm,
		Renderer:        renderer,
		Storage:         mem,
		StaticFS:        static,
		Products:        app.products,
		Categories:      app.categories,
		Gallery:         app.gallery,
		Contact:         app.contact,
		Events:          events,
		Version:         version.Info{Version: "test", GitCommit: "abc123", BuildTime: "now"},
		SiteURL:         testSiteURL,
		StorageDir:      t.TempDir(),
		CSRFKey:         []byte("0123456789abcdef0123456789abcdef"),
		ProductsPerPage: service.DefaultProductsPerPage,
		IsDev:           true,
	})

	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	app.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

// get fetches path and returns the response with its body read.
func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (a *testApp) postMultipart(t *testing.T, path, contentType string, body io.Reader) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Post(a.server.URL+path, contentType, body)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

// login signs in as the seeded admin.
func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp, _ := a.postForm(t, "/admin/login", url.Values{
		"email":    {testAdminEmail},
		"password": {testAdminPassword},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))
}

func (a *testApp) addProduct(t *testing.T, name, category string) {
	t.Helper()
	_, err := a.products.Save(context.Background(), service.SaveProductInput{
		Name:        name,
		Category:    category,
		Description: "Deskripsi " + name,
		ImageURL:    "https://cdn.atsaka.test/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".jpg",
	})
	require.NoError(t, err)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// multipartFile is one file part of a multipart form.
type multipartFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func buildMultipart(t *testing.T, fields map[string]string, files ...multipartFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
