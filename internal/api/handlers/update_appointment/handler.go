package update_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "Invalid appointment id"
	msgInvalidRequestBody   = "Invalid request body"
	msgNotFound             = "Appointment not found"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/appointments/{appointmentId}
// Частичное обновление: отсутствующие поля не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /admin/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /admin/appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PUT /admin/appointments/{id} - Invalid data: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, invalidMessage(err))

		default:
			h.logger.Error("PUT /admin/appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/appointments/{id} - Appointment updated: appointment_id=%d, status=%s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// invalidMessage убирает префикс категории из текста ошибки
func invalidMessage(err error) string {
	return strings.TrimPrefix(err.Error(), appointments.ErrInvalidInput.Error()+": ")
}
