package locations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

const (
	msgInvalidLocationID  = "Invalid location id"
	msgInvalidDayOffID    = "Invalid day off id"
	msgInvalidRequestBody = "Invalid request body"
	msgLocationNotFound   = "Location not found"
	msgDayOffNotFound     = "Day off not found"
)

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/locations, GET /api/v1/admin/locations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.respondError(w, "GET /locations", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/locations/{locationId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r, "GET /admin/locations/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetLocation(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/locations/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/locations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/locations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLocation(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/locations", err)
		return
	}

	h.logger.Info("POST /admin/locations - Location created: location_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/locations/{locationId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r, "PUT /admin/locations/{id}")
	if !ok {
		return
	}

	var req models.LocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateLocation(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/locations/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/locations/{id} - Location updated: location_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/locations/{locationId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r, "DELETE /admin/locations/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteLocation(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/locations/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/locations/{id} - Location deleted: location_id=%d", id)
	handlers.RespondNoContent(w)
}

// AddDayOff POST /api/v1/admin/locations/{locationId}/days-off
func (h *Handler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r, "POST /admin/locations/{id}/days-off")
	if !ok {
		return
	}

	var req models.DayOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/locations/{id}/days-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddLocationDayOff(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "POST /admin/locations/{id}/days-off", err)
		return
	}

	h.logger.Info("POST /admin/locations/{id}/days-off - Day off added: location_id=%d, day_off_id=%d", id, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteDayOff DELETE /api/v1/admin/locations/{locationId}/days-off/{dayOffId}
func (h *Handler) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /admin/locations/{id}/days-off/{dayOffId}"

	id, ok := h.locationID(w, r, op)
	if !ok {
		return
	}

	dayOffID, err := handlers.ParseID(r, "dayOffId")
	if err != nil {
		h.logger.Warn("%s - Invalid day off ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidDayOffID)
		return
	}

	if err := h.service.DeleteLocationDayOff(r.Context(), id, dayOffID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Day off deleted: location_id=%d, day_off_id=%d", op, id, dayOffID)
	handlers.RespondNoContent(w)
}

func (h *Handler) locationID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	id, err := handlers.ParseID(r, "locationId")
	if err != nil {
		h.logger.Warn("%s - Invalid location ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrLocationNotFound):
		h.logger.Warn("%s - Location not found", op)
		handlers.RespondNotFound(w, msgLocationNotFound)

	case errors.Is(err, catalog.ErrDayOffNotFound):
		h.logger.Warn("%s - Day off not found", op)
		handlers.RespondNotFound(w, msgDayOffNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", op, err)
		handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": "))

	default:
		h.logger.Error("%s - Failed: error=%v", op, err)
		handlers.RespondInternalError(w)
	}
}
