// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages with
// the shared layout, theme and flash data.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/atsaka/atsaka-web/internal/middleware"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/theme"
)

// Session keys for flash messages.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// blankLinesRegex matches two or more consecutive newlines with optional whitespace between.
var blankLinesRegex = regexp.MustCompile(`(\r?\n\s*){2,}`)

const (
	baseLayout  = "layouts/base.html"
	adminLayout = "layouts/admin.html"
)

// pageDirs maps template directories to the layouts they are parsed with.
var pageDirs = []struct {
	dir     string
	layouts []string
}{
	{"public", []string{baseLayout}},
	{"auth", []string{baseLayout}},
	{"errors", []string{baseLayout}},
	{"admin", []string{baseLayout, adminLayout}},
}

// Renderer handles template rendering with caching.
type Renderer struct {
	mu             sync.RWMutex
	templates      map[string]*template.Template
	templatesFS    fs.FS
	sessionManager *scs.SessionManager
	isDev          bool
	siteName       string
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	// IsDev re-parses templates on every render.
	IsDev    bool
	SiteName string
}

// New creates a Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templatesFS:    cfg.TemplatesFS,
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		siteName:       cfg.SiteName,
		now:            time.Now,
	}
	if r.siteName == "" {
		r.siteName = "ATSAKA"
	}

	templates, err := r.parseTemplates()
	if err != nil {
		return nil, err
	}
	r.templates = templates
	return r, nil
}

func (r *Renderer) parseTemplates() (map[string]*template.Template, error) {
	partials, err := templateFiles(r.templatesFS, "partials")
	if err != nil {
		return nil, fmt.Errorf("getting partials: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, pd := range pageDirs {
		pages, err := templateFiles(r.templatesFS, pd.dir)
		if err != nil {
			return nil, fmt.Errorf("getting %s templates: %w", pd.dir, err)
		}

		for _, page := range pages {
			name := pd.dir + "/" + strings.TrimSuffix(path.Base(page), ".html")

			// Order matters: later files override blocks from earlier ones.
			files := make([]string, 0, len(pd.layouts)+len(partials)+1)
			files = append(files, pd.layouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New(name).Funcs(templateFuncs()).ParseFS(r.templatesFS, files...)
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", name, err)
			}
			templates[name] = tmpl
		}
	}

	return templates, nil
}

// templateFiles returns the .html files in dir. A missing dir yields none.
func templateFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Description string
	SiteName    string
	Theme       theme.Mode
	Flash       string
	FlashType   string
	CurrentPath string
	// CanonicalURL is the full URL of the page, set by handlers that know the site URL.
	CanonicalURL string
	User         *store.User
	Data         any
	// Errors maps form field names to messages.
	Errors      map[string]string
	CurrentYear int
}

// HasError reports whether field has a validation message.
func (d TemplateData) HasError(field string) bool {
	_, ok := d.Errors[field]
	return ok
}

// Render writes the page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus writes the page with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	data.SiteName = r.siteName
	data.CurrentYear = r.now().Year()
	data.Theme = theme.FromContext(req.Context())
	data.CurrentPath = req.URL.Path
	if data.User == nil {
		data.User = middleware.GetUser(req)
	}
	if flash, flashType := r.PopFlash(req); flash != "" {
		data.Flash = flash
		data.FlashType = flashType
	}

	// Render to a buffer so a template error never leaves a half-written page.
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n")))
	return err
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.isDev {
		templates, err := r.parseTemplates()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.templates = templates
		r.mu.Unlock()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	return tmpl, nil
}

// SetFlash stores a message shown on the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager == nil {
		return
	}
	r.sessionManager.Put(req.Context(), flashKey, message)
	r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
}

// PopFlash returns and clears the pending flash message.
func (r *Renderer) PopFlash(req *http.Request) (string, string) {
	if r.sessionManager == nil {
		return "", ""
	}
	flash := r.sessionManager.PopString(req.Context(), flashKey)
	if flash == "" {
		return "", ""
	}
	flashType := r.sessionManager.PopString(req.Context(), flashTypeKey)
	if flashType == "" {
		flashType = FlashInfo
	}
	return flash, flashType
}
