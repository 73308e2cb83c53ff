package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_ExactMatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("list"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "list" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestRouter_WildcardSegment(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses/*/ranking", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/abc-123/ranking", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_RegistrationOrderWins(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses/*/ranking", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ranking"))
	})
	r.GET("/api/v1/analyses/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("detail"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/abc/ranking", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "ranking" {
		t.Errorf("expected specific route to win, got %q", w.Body.String())
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestRouter_Middleware(t *testing.T) {
	r := New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("X-Block") == "1" {
				http.Error(w, "blocked", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.GET("/ok", func(w http.ResponseWriter, req *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Block", "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected middleware to block, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", w.Code)
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/a/b/c", "/a/b/c", true},
		{"/a/b/c", "/a/*/c", true},
		{"/a/b/c", "/a/*", true},
		{"/a", "/a/*", false},
		{"/a/b", "/a/b/c", false},
		{"/swagger/index.html", "/swagger/*", true},
	}

	for _, c := range cases {
		if got := matchPattern(c.path, c.pattern); got != c.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", c.path, c.pattern, got, c.want)
		}
	}
}
