package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testCSRFKey = bytes.Repeat([]byte{7}, 32)

// TestRateLimiter_Allow verifies the bucket empties and refills.
func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 2, time.Hour)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests rejected")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request allowed, want rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IP rejected")
	}
}

// TestRateLimit_IgnoresPort verifies clients are keyed by host, not host:port.
func TestRateLimit_IgnoresPort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := RateLimit(NewRateLimiter(ctx, 1, time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRequest("GET", "/", nil)
	first.RemoteAddr = "192.0.2.1:1111"
	second := httptest.NewRequest("GET", "/", nil)
	second.RemoteAddr = "192.0.2.1:2222"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", rr.Code)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", rr.Code)
	}
}

// TestSecurityHeaders verifies the OWASP headers are set.
func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	for _, h := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

// TestCSRF_ExemptsJSON verifies JSON requests pass without a token while
// form posts are rejected.
func TestCSRF_ExemptsJSON(t *testing.T) {
	handler := CSRF(CSRFOptions{Key: testCSRFKey})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("POST", "/api/edit/start", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("JSON status = %d, want 204", rr.Code)
	}

	req = httptest.NewRequest("POST", "/api/edit/logo", bytes.NewBufferString("x=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("form status = %d, want 403", rr.Code)
	}
}

// TestChain_Order verifies the last middleware listed runs first.
func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}
