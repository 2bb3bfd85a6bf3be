package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"stayhub/pkg/docstore"
	"stayhub/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthAndReady(t *testing.T) {
	tests := []struct {
		name       string
		store      Pinger
		path       string
		wantStatus int
	}{
		{"health ignores store", pingFunc(func(context.Context) error { return errors.New("down") }), "/health", http.StatusOK},
		{"ready with memory store", docstore.NewMemoryStore(), "/ready", http.StatusOK},
		{"ready with failing store", pingFunc(func(context.Context) error { return docstore.ErrUnavailable }), "/ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(tt.store, logger.Discard()).RegisterRoutes(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}
