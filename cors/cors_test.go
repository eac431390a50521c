package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewareSetsHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "get", method: http.MethodGet, path: "/index.html"},
		{name: "post", method: http.MethodPost, path: "/api/upload"},
		{name: "options", method: http.MethodOptions, path: "/anything"},
		{name: "head", method: http.MethodHead, path: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			Middleware(next).ServeHTTP(rec, req)

			assertCORSHeaders(t, rec)
			if rec.Code != http.StatusTeapot {
				t.Errorf("middleware must delegate to next handler, got status %d", rec.Code)
			}
		})
	}
}

func TestMiddlewareKeepsHeadersOnErrorStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing.html", nil)
	Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertCORSHeaders(t, rec)
}

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	expected := map[string]string{
		"Access-Control-Allow-Origin":  AllowOrigin,
		"Access-Control-Allow-Methods": AllowMethods,
		"Access-Control-Allow-Headers": AllowHeaders,
	}
	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
