// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme persists the visitor's light/dark choice in a cookie and
// exposes it to templates through the request context.
package theme

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Mode is a colour scheme.
type Mode string

// Modes. System means no stored choice; the page follows prefers-color-scheme.
const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// CookieName stores the chosen Mode.
const CookieName = "theme"

// CookieMaxAge keeps the choice for a year.
const CookieMaxAge = 365 * 24 * time.Hour

type contextKey struct{}

// Parse maps a stored value to a Mode. Anything unknown is System.
func Parse(v string) Mode {
	switch Mode(v) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return System
	}
}

// Toggle flips between light and dark. System counts as light; callers that
// know what the browser resolved should go through Resolve first.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// CurrentField is the toggle form field carrying the mode the page shows.
const CurrentField = "current"

// Resolve returns the mode the visitor is looking at. A stored choice wins.
// Without one the page reports what prefers-color-scheme resolved to, and
// anything else counts as light.
func Resolve(stored Mode, shown string) Mode {
	if stored != System {
		return stored
	}
	if Parse(shown) == Dark {
		return Dark
	}
	return Light
}

// IsDark reports whether the page should render with class="dark".
func (m Mode) IsDark() bool {
	return m == Dark
}

func (m Mode) String() string {
	return string(m)
}

// FromRequest reads the theme cookie.
func FromRequest(r *http.Request) Mode {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return System
	}
	return Parse(c.Value)
}

// SetCookie stores m for a year.
func SetCookie(w http.ResponseWriter, m Mode, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.String(),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithMode returns a context carrying m.
func WithMode(ctx context.Context, m Mode) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the Mode stored by Middleware, or System.
func FromContext(ctx context.Context) Mode {
	if m, ok := ctx.Value(contextKey{}).(Mode); ok {
		return m
	}
	return System
}

// Middleware loads the cookie into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithMode(r.Context(), FromRequest(r))))
	})
}

// ReturnPath picks where to send the visitor after toggling: the Referer's
// path when it points at this host, otherwise "/".
func ReturnPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host != r.Host || u.Path == "" || u.Path[0] != '/' {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
