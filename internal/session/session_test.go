// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == SecureCookieName {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(setupTestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != SecureCookieName {
		t.Errorf("cookie name = %q, want %q", sm.Cookie.Name, SecureCookieName)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("Cookie.Path = %q, want /", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(setupTestDB(t), false)

	if sm.Lifetime != Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
}

func TestNew_PersistsToStore(t *testing.T) {
	db := setupTestDB(t)
	sm := New(db, true)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sm.Put(ctx, "user_id", int64(42))
	token, _, err := sm.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE token = ?`, token).Scan(&count); err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if count != 1 {
		t.Errorf("sessions rows for token = %d, want 1", count)
	}

	loaded, err := sm.Load(context.Background(), token)
	if err != nil {
		t.Fatalf("Load existing: %v", err)
	}
	if got := sm.GetInt64(loaded, "user_id"); got != 42 {
		t.Errorf("user_id = %d, want 42", got)
	}
}
