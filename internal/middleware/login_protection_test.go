// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testLoginProtection returns a protector with a controllable clock.
func testLoginProtection(maxAttempts int, lockout, window time.Duration) (*LoginProtection, *time.Time) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }
	return lp, &now
}

func TestNewLoginProtection_Defaults(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})
	if lp.maxFailedAttempts != 5 {
		t.Errorf("maxFailedAttempts = %d, want 5", lp.maxFailedAttempts)
	}
	if lp.lockoutDuration != 15*time.Minute {
		t.Errorf("lockoutDuration = %v, want 15m", lp.lockoutDuration)
	}
	if lp.GetRemainingAttempts("nobody@atsaka.test") != 5 {
		t.Error("unknown account should have all attempts remaining")
	}
}

func TestLoginProtection_LocksAfterMaxAttempts(t *testing.T) {
	lp, _ := testLoginProtection(3, time.Minute, time.Hour)
	email := "admin@atsaka.test"

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("locked after %d attempts", i+1)
		}
	}
	if got := lp.GetRemainingAttempts(email); got != 1 {
		t.Errorf("remaining = %d, want 1", got)
	}

	locked, d := lp.RecordFailedAttempt(email)
	if !locked || d != time.Minute {
		t.Fatalf("third failure: locked=%v duration=%v, want true 1m", locked, d)
	}
	if isLocked, remaining := lp.IsAccountLocked(email); !isLocked || remaining <= 0 {
		t.Errorf("IsAccountLocked() = %v %v", isLocked, remaining)
	}
}

func TestLoginProtection_LockoutExpiresAndDoubles(t *testing.T) {
	lp, now := testLoginProtection(2, time.Minute, time.Hour)
	email := "admin@atsaka.test"

	lp.RecordFailedAttempt(email)
	if locked, d := lp.RecordFailedAttempt(email); !locked || d != time.Minute {
		t.Fatalf("first lockout: %v %v", locked, d)
	}

	*now = now.Add(2 * time.Minute)
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("lockout should have expired")
	}

	lp.RecordFailedAttempt(email)
	if locked, d := lp.RecordFailedAttempt(email); !locked || d != 2*time.Minute {
		t.Errorf("second lockout: locked=%v duration=%v, want 2m", locked, d)
	}
}

func TestLoginProtection_WindowResets(t *testing.T) {
	lp, now := testLoginProtection(3, time.Minute, 10*time.Minute)
	email := "admin@atsaka.test"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	*now = now.Add(11 * time.Minute)

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining after window = %d, want 3", got)
	}
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("failure after the window should start a new count")
	}
}

func TestLoginProtection_SuccessClears(t *testing.T) {
	lp, _ := testLoginProtection(3, time.Minute, time.Hour)
	email := "admin@atsaka.test"

	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	h := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method string) int {
		req := httptest.NewRequest(method, LoginPath, nil)
		req.RemoteAddr = "203.0.113.20:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(http.MethodPost); code != http.StatusOK {
		t.Fatalf("first POST = %d, want 200", code)
	}
	if code := send(http.MethodPost); code != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", code)
	}
	if code := send(http.MethodGet); code != http.StatusOK {
		t.Errorf("GET = %d, want 200", code)
	}
}
