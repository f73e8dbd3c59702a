// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPRateLimiter_Middleware(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 2)
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":4242"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := post("203.0.113.9"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := post("203.0.113.9"); code != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d, want 429", code)
	}
	if code := post("198.51.100.1"); code != http.StatusOK {
		t.Errorf("other IP: status = %d, want 200", code)
	}

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/contact", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET should not be limited, got %d", w.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		header map[string]string
		want   string
	}{
		{"remote addr", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"remote without port", "192.0.2.1", nil, "192.0.2.1"},
		{"x-real-ip", "10.0.0.1:1", map[string]string{"X-Real-IP": "203.0.113.5"}, "203.0.113.5"},
		{"x-forwarded-for first hop", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Error("cache under the limit was cleared")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("cache over the limit was not cleared")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("limiters = %d after clear, want 0", len(lc.limiters))
	}
}
