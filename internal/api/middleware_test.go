package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("expected first two requests allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("expected third request denied")
	}
	// Other clients have their own bucket
	if !rl.Allow("5.6.7.8") {
		t.Error("expected fresh client allowed")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") {
		t.Fatal("expected first request allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("expected second request denied")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Error("expected request allowed after refill")
	}
}

func TestRateLimitUploads(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimitUploads(rl)(next)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := post(); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}

	// Reads are never rate limited
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected GET to pass, got %d", rec.Code)
	}
}
