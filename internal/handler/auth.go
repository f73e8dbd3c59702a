// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/atsaka/atsaka-web/internal/auth"
	"github.com/atsaka/atsaka-web/internal/middleware"
	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/render"
	"github.com/atsaka/atsaka-web/internal/service"
	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/validation"
)

const msgInvalidCredentials = "Email atau kata sandi salah."

// LoginInput is the admin login form.
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginData is the login page view model.
type LoginData struct {
	Email string
}

// AuthHandler handles admin sign-in and sign-out.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, events *service.EventService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		eventService:    events,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in admins go straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID); userID > 0 {
		if _, err := h.queries.GetUserByID(r.Context(), userID); err == nil {
			http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
			return
		}
	}

	renderPage(w, r, h.renderer, tmplLogin, render.TemplateData{Title: "Masuk Admin", Data: LoginData{}})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, status int, email string, errs validation.Errors) {
	renderStatus(w, r, h.renderer, status, tmplLogin, render.TemplateData{
		Title:  "Masuk Admin",
		Errors: errs,
		Data:   LoginData{Email: email},
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectLogin, msgInvalidForm)
		return
	}

	in := LoginInput{
		Email:    strings.ToLower(strings.TrimSpace(r.PostFormValue("email"))),
		Password: r.PostFormValue("password"),
	}
	if errs, ok := validation.AsErrors(validation.Validate(in)); ok {
		h.renderLoginError(w, r, http.StatusUnprocessableEntity, in.Email, errs)
		return
	}

	ctx := r.Context()
	meta := map[string]any{"email": in.Email, "ip": middleware.ClientIP(r)}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(in.Email); locked {
			h.logAuth(r, model.EventLevelWarning, "Login attempt on locked account", nil, meta)
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Akun dikunci sementara. Coba lagi dalam %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown user", "email", in.Email)
			h.logAuth(r, model.EventLevelWarning, "Login failed: user not found", nil, meta)
		} else {
			slog.Error("database error during login", "error", err)
		}
		h.failedAttempt(w, r, in.Email, nil, meta)
		return
	}

	valid, err := auth.CheckPassword(in.Password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
	}
	if !valid {
		h.logAuth(r, model.EventLevelWarning, "Login failed: invalid password", &user.ID, meta)
		h.failedAttempt(w, r, in.Email, &user.ID, meta)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(in.Email)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(in.Password); err == nil {
			if err := h.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// New token before storing the user so a planted session ID is useless.
	if err := h.sessionManager.RenewToken(ctx); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(ctx, middleware.SessionKeyUserID, user.ID)

	slog.Info("admin logged in", "user_id", user.ID)
	h.logAuth(r, model.EventLevelInfo, "User logged in", &user.ID, meta)

	flashSuccess(w, r, h.renderer, redirectAdmin, fmt.Sprintf("Selamat datang kembali, %s!", user.Name))
}

// failedAttempt counts a failed login, including for unknown emails so the
// response does not reveal which accounts exist.
func (h *AuthHandler) failedAttempt(w http.ResponseWriter, r *http.Request, email string, userID *int64, meta map[string]any) {
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			h.logAuth(r, model.EventLevelWarning, "Account locked due to failed attempts", userID, meta)
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Terlalu banyak percobaan gagal. Akun dikunci selama %s.", formatDuration(lockDuration)))
			return
		}
		if remaining := h.loginProtection.GetRemainingAttempts(email); remaining > 0 && remaining <= 3 {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("%s Sisa percobaan: %d.", msgInvalidCredentials, remaining))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, msgInvalidCredentials)
}

func (h *AuthHandler) logAuth(r *http.Request, level, message string, userID *int64, meta map[string]any) {
	if h.eventService == nil {
		return
	}
	if err := h.eventService.LogAuthEvent(r.Context(), level, message, userID, meta); err != nil {
		slog.Warn("failed to record auth event", "error", err)
	}
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if userID > 0 {
		h.logAuth(r, model.EventLevelInfo, "User logged out", &userID, map[string]any{"ip": middleware.ClientIP(r)})
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("admin logged out", "user_id", userID)
	flashAndRedirect(w, r, h.renderer, redirectLogin, "Anda telah keluar.", render.FlashInfo)
}

// formatDuration renders a lockout duration in Indonesian.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d detik", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d menit", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d jam", int(d.Hours()))
	}
}
