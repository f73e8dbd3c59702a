// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/atsaka/atsaka-web/internal/theme"
)

// ThemeHandler flips the light/dark preference cookie.
type ThemeHandler struct {
	secureCookie bool
}

// NewThemeHandler creates a ThemeHandler. Cookies are marked Secure outside development.
func NewThemeHandler(secureCookie bool) *ThemeHandler {
	return &ThemeHandler{secureCookie: secureCookie}
}

// Toggle handles POST /theme/toggle and sends the visitor back to the page they came from.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	next := theme.Resolve(theme.FromRequest(r), r.PostFormValue(theme.CurrentField)).Toggle()
	theme.SetCookie(w, next, h.secureCookie)
	http.Redirect(w, r, theme.ReturnPath(r), http.StatusSeeOther)
}
