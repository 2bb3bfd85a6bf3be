package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

type mockPlaceService struct {
	createFunc      func(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error)
	searchFunc      func(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error)
	updateFunc      func(ctx context.Context, id string, input *model.PlaceInput) (*model.Place, error)
	deleteFunc      func(ctx context.Context, id string) error
	addImageFunc    func(ctx context.Context, id, filename string, data []byte) (*model.Place, error)
	listByOwnerFunc func(ctx context.Context, ownerID string) ([]model.Place, error)
}

func (m *mockPlaceService) Create(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ownerID, input)
	}
	return &model.Place{ID: "p-1", OwnerID: ownerID}, nil
}

func (m *mockPlaceService) GetByID(ctx context.Context, id string) (*model.Place, error) {
	return &model.Place{ID: id}, nil
}

func (m *mockPlaceService) Search(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter)
	}
	return []model.Place{}, nil
}

func (m *mockPlaceService) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return []model.Place{}, nil
}

func (m *mockPlaceService) Update(ctx context.Context, id string, input *model.PlaceInput) (*model.Place, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, input)
	}
	return &model.Place{ID: id}, nil
}

func (m *mockPlaceService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlaceService) AddImage(ctx context.Context, id, filename string, data []byte) (*model.Place, error) {
	if m.addImageFunc != nil {
		return m.addImageFunc(ctx, id, filename, data)
	}
	return &model.Place{ID: id}, nil
}

func newRouter(svc *mockPlaceService) *httprouter.Router {
	router := httprouter.New()
	NewPlaceHandler(svc, 1<<20, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestSearch_ParsesFilters(t *testing.T) {
	var got *model.PlaceFilter
	svc := &mockPlaceService{
		searchFunc: func(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error) {
			got = filter
			return []model.Place{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/places?city=Lisbon&title=loft&priceMin=10&priceMax=200.5&latitude=38.7&longitude=-9.1&distance=5&startDate=2023-01-10", nil)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.City != "Lisbon" || got.Title != "loft" {
		t.Errorf("unexpected text filters %+v", got)
	}
	if got.PriceMin == nil || *got.PriceMin != 10 || got.PriceMax == nil || *got.PriceMax != 200.5 {
		t.Errorf("unexpected price filters")
	}
	if got.DistanceKm == nil || *got.DistanceKm != 5 || got.Longitude == nil || *got.Longitude != -9.1 {
		t.Errorf("unexpected geo filters")
	}
	if got.StartDate == nil || got.StartDate.String() != "2023-01-10" {
		t.Errorf("unexpected start date %v", got.StartDate)
	}
}

func TestSearch_MalformedQuery(t *testing.T) {
	tests := []string{
		"/api/v1/places?priceMin=cheap",
		"/api/v1/places?distance=far&latitude=1&longitude=1",
		"/api/v1/places?startDate=10-01-2023",
		"/api/v1/places?distance=NaN&latitude=0&longitude=0",
		"/api/v1/places?priceMax=Inf",
		"/api/v1/places?priceMin=-Infinity",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			called := false
			svc := &mockPlaceService{
				searchFunc: func(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error) {
					called = true
					return nil, nil
				},
			}
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if called {
				t.Errorf("service must not run with a malformed query")
			}
		})
	}
}

func TestCreate_UsesOwnerFromPath(t *testing.T) {
	var gotOwner string
	svc := &mockPlaceService{
		createFunc: func(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error) {
			gotOwner = ownerID
			return &model.Place{ID: "p-1", OwnerID: ownerID, Title: input.Title}, nil
		},
	}

	body := `{"title":"Sea View Loft","description":"Bright loft on the beach","price":100,"start":"2023-01-01","end":"2023-01-31"}`
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/owners/owner-9/places", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotOwner != "owner-9" {
		t.Errorf("expected owner-9, got %q", gotOwner)
	}
}

func TestDelete_Conflict(t *testing.T) {
	svc := &mockPlaceService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.Conflict("Place has bookings")
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/places/p-1", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestUploadImage(t *testing.T) {
	var gotName string
	var gotData []byte
	svc := &mockPlaceService{
		addImageFunc: func(ctx context.Context, id, filename string, data []byte) (*model.Place, error) {
			gotName, gotData = filename, data
			return &model.Place{ID: id, Images: []string{"http://x/images/places/a.png"}}, nil
		},
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(ImageField, "loft.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("fake-png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places/p-1/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotName != "loft.png" || string(gotData) != "fake-png-bytes" {
		t.Errorf("service received %q / %q", gotName, gotData)
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("caption", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places/p-1/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newRouter(&mockPlaceService{}).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
