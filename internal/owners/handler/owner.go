package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stayhub/internal/owners/service"
	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

type OwnerHandler struct {
	service service.OwnerService
	log     *logger.Logger
}

func NewOwnerHandler(service service.OwnerService, log *logger.Logger) *OwnerHandler {
	return &OwnerHandler{
		service: service,
		log:     log,
	}
}

func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.OwnerInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	owner, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, owner); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *OwnerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	owners, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, owners); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OwnerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	owner, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, owner); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OwnerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.OwnerInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	owner, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, owner); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OwnerHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OwnerHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *OwnerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/owners", h.Create)
	router.GET("/api/v1/owners", h.GetAll)
	router.GET("/api/v1/owners/:id", h.GetByID)
	router.PUT("/api/v1/owners/:id", h.Update)
	router.DELETE("/api/v1/owners/:id", h.Delete)
}
