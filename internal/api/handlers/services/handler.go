package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "Invalid service id"
	msgInvalidRequestBody = "Invalid request body"
	msgServiceNotFound    = "Service not found"
)

type Handler struct {
	service ServiceCatalog
	logger  Logger
}

func NewHandler(service ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services, GET /api/v1/admin/services
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListServices(r.Context())
	if err != nil {
		h.respondError(w, "GET /services", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/services/{serviceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r, "GET /admin/services/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetService(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/services/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r, "PUT /admin/services/{id}")
	if !ok {
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateService(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r, "DELETE /admin/services/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) serviceID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	id, err := handlers.ParseID(r, "serviceId")
	if err != nil {
		h.logger.Warn("%s - Invalid service ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", op)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", op, err)
		handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": "))

	default:
		h.logger.Error("%s - Failed: error=%v", op, err)
		handlers.RespondInternalError(w)
	}
}
