// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/atsaka/atsaka-web/internal/store"
	"github.com/atsaka/atsaka-web/internal/testutil"
)

// sessionRequest returns a request whose context carries a loaded session
// with the given values.
func sessionRequest(t *testing.T, sm *scs.SessionManager, method, target string, values map[string]any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	for k, v := range values {
		sm.Put(ctx, k, v)
	}
	return req.WithContext(ctx)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin_RedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		called := false
		req := sessionRequest(t, sm, method, "/admin/products", nil)
		w := httptest.NewRecorder()

		RequireAdmin(sm)(okHandler(&called)).ServeHTTP(w, req)

		if called {
			t.Errorf("%s: protected handler ran for anonymous request", method)
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", method, w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != LoginPath {
			t.Errorf("%s: Location = %q, want %q", method, loc, LoginPath)
		}
	}
}

func TestRequireAdmin_AllowsSignedIn(t *testing.T) {
	sm := scs.New()
	called := false
	req := sessionRequest(t, sm, http.MethodGet, "/admin", map[string]any{SessionKeyUserID: int64(7)})
	w := httptest.NewRecorder()

	RequireAdmin(sm)(okHandler(&called)).ServeHTTP(w, req)

	if !called {
		t.Fatal("protected handler did not run for signed-in admin")
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestLoadUser(t *testing.T) {
	db := testutil.TestDB(t)
	now := time.Now().UTC()

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "admin@atsaka.test",
		PasswordHash: "x",
		Name:         "Admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	sm := scs.New()

	t.Run("known user lands in context", func(t *testing.T) {
		var got *store.User
		req := sessionRequest(t, sm, http.MethodGet, "/admin", map[string]any{SessionKeyUserID: user.ID})
		w := httptest.NewRecorder()

		LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetUser(r)
		})).ServeHTTP(w, req)

		if got == nil || got.ID != user.ID {
			t.Fatalf("GetUser() = %+v, want user %d", got, user.ID)
		}
	})

	t.Run("missing user is signed out", func(t *testing.T) {
		called := false
		req := sessionRequest(t, sm, http.MethodGet, "/admin", map[string]any{SessionKeyUserID: int64(9999)})
		w := httptest.NewRecorder()

		LoadUser(sm, db)(okHandler(&called)).ServeHTTP(w, req)

		if called {
			t.Error("handler ran for a session pointing at a deleted user")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		called := false
		req := sessionRequest(t, sm, http.MethodGet, "/", nil)
		LoadUser(sm, db)(okHandler(&called)).ServeHTTP(httptest.NewRecorder(), req)
		if !called {
			t.Error("anonymous request was blocked")
		}
	})
}

func TestGetUserHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil || GetUserID(req) != 0 || GetUserIDPtr(req) != nil {
		t.Fatal("helpers should report no user for a bare request")
	}

	ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: 456, Email: "a@b.c"})
	req = req.WithContext(ctx)

	if GetUserID(req) != 456 {
		t.Errorf("GetUserID() = %d, want 456", GetUserID(req))
	}
	if p := GetUserIDPtr(req); p == nil || *p != 456 {
		t.Errorf("GetUserIDPtr() = %v, want 456", p)
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	h := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/pompa", nil))

	if got != "/products/pompa" {
		t.Errorf("GetRequestPath() = %q, want /products/pompa", got)
	}
	if GetRequestPath(context.Background()) != "" {
		t.Error("empty context should yield empty path")
	}
}
