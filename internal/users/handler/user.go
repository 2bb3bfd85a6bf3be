package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stayhub/internal/users/service"
	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

const ImageField = "image"

type UserHandler struct {
	service       service.UserService
	maxUploadSize int64
	log           *logger.Logger
}

func NewUserHandler(service service.UserService, maxUploadSize int64, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.UserInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	user, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// GetByEmail serves GET /users?email=. The parameter is mandatory.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.service.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, "GetByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.UserInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	user, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filename, data, err := httputil.ReadUpload(r, ImageField, h.maxUploadSize)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	user, err := h.service.SetImage(r.Context(), ps.ByName("id"), filename, data)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users", h.Create)
	router.GET("/api/v1/users", h.GetByEmail)
	router.GET("/api/v1/users/:id", h.GetByID)
	router.PUT("/api/v1/users/:id", h.Update)
	router.DELETE("/api/v1/users/:id", h.Delete)
	router.POST("/api/v1/users/:id/image", h.UploadImage)
}
