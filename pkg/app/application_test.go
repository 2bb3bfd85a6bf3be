package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"

	"stayhub/pkg/config"
	"stayhub/pkg/logger"
)

type routes func(router *httprouter.Router)

func (f routes) RegisterRoutes(router *httprouter.Router) { f(router) }

func TestIsUpload(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/v1/places/p-1/images", true},
		{http.MethodPost, "/api/v1/users/u-1/image", true},
		{http.MethodGet, "/api/v1/places/p-1/images", false},
		{http.MethodPost, "/api/v1/places", false},
		{http.MethodPut, "/api/v1/users/u-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := IsUpload(httptest.NewRequest(tt.method, tt.path, nil)); got != tt.want {
				t.Errorf("IsUpload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandlerRouting(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Log = logger.Discard()
	cfg.RateLimitRequests = 1

	imageDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(imageDir, "places"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(imageDir, "places", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	health := routes(func(router *httprouter.Router) {
		router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})
	api := routes(func(router *httprouter.Router) {
		router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})

	application := NewApplication()
	application.SetApp(cfg, health, imageDir, api)
	t.Cleanup(application.Stop)
	handler := application.Handler()

	get := func(path string) int {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	if code := get("/api/v1/ping"); code != http.StatusOK {
		t.Fatalf("first API request: expected 200, got %d", code)
	}
	if code := get("/api/v1/ping"); code != http.StatusTooManyRequests {
		t.Errorf("second API request: expected 429, got %d", code)
	}
	for i := 0; i < 3; i++ {
		if code := get("/health"); code != http.StatusOK {
			t.Errorf("health is not rate limited: expected 200, got %d", code)
		}
	}
	if code := get("/images/places/a.png"); code != http.StatusOK {
		t.Errorf("hosted image: expected 200, got %d", code)
	}
}
