package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	userserrors "stayhub/internal/users/errors"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

type mockUserService struct {
	createFunc     func(ctx context.Context, input *model.UserInput) (*model.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserService) Create(ctx context.Context, input *model.UserInput) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.User{ID: "u-1"}, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return &model.User{Email: email}, nil
}

func (m *mockUserService) Update(ctx context.Context, id string, input *model.UserInput) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockUserService) SetImage(ctx context.Context, id, filename string, data []byte) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func newRouter(svc *mockUserService) *httprouter.Router {
	router := httprouter.New()
	NewUserHandler(svc, 1<<20, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate email", apperrors.Conflict("exists").WithCause(userserrors.ErrEmailTaken), http.StatusConflict},
		{"validation", apperrors.Validation("bad", map[string]any{"email": "email must be a valid email address"}), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserService{
				createFunc: func(ctx context.Context, input *model.UserInput) (*model.User, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.User{ID: "u-1", Email: input.Email}, nil
				},
			}

			body := `{"name":"Ada","surname":"Lovelace","email":"ada@example.com","password":"secret123"}`
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body)))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreate_ResponseHasNoPasswordHash(t *testing.T) {
	svc := &mockUserService{
		createFunc: func(ctx context.Context, input *model.UserInput) (*model.User, error) {
			return &model.User{ID: "u-1", Email: input.Email}, nil
		},
	}

	body := `{"email":"ada@example.com"}`
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body)))

	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Errorf("response leaked passwordHash: %s", w.Body.String())
	}
}

func TestGetByEmail(t *testing.T) {
	var gotEmail string
	svc := &mockUserService{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			gotEmail = email
			return &model.User{ID: "u-1", Email: email}, nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users?email=ada%40example.com", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotEmail != "ada@example.com" {
		t.Errorf("expected decoded email, got %q", gotEmail)
	}
	var resp struct {
		Data model.User `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID != "u-1" {
		t.Errorf("unexpected user %+v", resp.Data)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &mockUserService{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, apperrors.NotFoundWithID("User", id)
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
