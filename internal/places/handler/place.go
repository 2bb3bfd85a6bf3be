package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"stayhub/internal/places/service"
	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

// ImageField is the multipart field carrying an uploaded image.
const ImageField = "image"

type PlaceHandler struct {
	service       service.PlaceService
	maxUploadSize int64
	log           *logger.Logger
}

func NewPlaceHandler(service service.PlaceService, maxUploadSize int64, log *logger.Logger) *PlaceHandler {
	return &PlaceHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.PlaceInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	place, err := h.service.Create(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, place); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PlaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	place, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseFilter(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	places, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) ListByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	places, err := h.service.ListByOwner(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.PlaceInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	place, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PlaceHandler) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filename, data, err := httputil.ReadUpload(r, ImageField, h.maxUploadSize)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	place, err := h.service.AddImage(r.Context(), ps.ByName("id"), filename, data)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	if err := httputil.WriteCreated(w, place); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadImage", "operation", "WriteCreated", "error", err)
	}
}

func (h *PlaceHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func parseFilter(r *http.Request) (*model.PlaceFilter, error) {
	query := r.URL.Query()
	filter := &model.PlaceFilter{
		City:  strings.TrimSpace(query.Get("city")),
		Title: strings.TrimSpace(query.Get("title")),
	}

	var err error
	if filter.PriceMin, err = httputil.QueryFloat(r, "priceMin"); err != nil {
		return nil, err
	}
	if filter.PriceMax, err = httputil.QueryFloat(r, "priceMax"); err != nil {
		return nil, err
	}
	if filter.Latitude, err = httputil.QueryFloat(r, "latitude"); err != nil {
		return nil, err
	}
	if filter.Longitude, err = httputil.QueryFloat(r, "longitude"); err != nil {
		return nil, err
	}
	if filter.DistanceKm, err = httputil.QueryFloat(r, "distance"); err != nil {
		return nil, err
	}
	if filter.StartDate, err = httputil.QueryDate(r, "startDate"); err != nil {
		return nil, err
	}
	return filter, nil
}

func (h *PlaceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/owners/:id/places", h.Create)
	router.GET("/api/v1/owners/:id/places", h.ListByOwner)
	router.GET("/api/v1/places", h.Search)
	router.GET("/api/v1/places/:id", h.GetByID)
	router.PUT("/api/v1/places/:id", h.Update)
	router.DELETE("/api/v1/places/:id", h.Delete)
	router.POST("/api/v1/places/:id/images", h.UploadImage)
}
