package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const msgInvalidRequestBody = "Invalid request body"

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ctx := r.Context()
	useCaseReq := req.ToUseCaseRequest(middleware.GetClientIP(ctx), middleware.IsAdmin(ctx))

	result, err := h.useCase.Execute(ctx, useCaseReq)
	if err != nil {
		var rejection *createAppointment.ValidationError
		if !errors.As(err, &rejection) {
			h.logger.Error("POST /appointments - Failed to create appointment: location_id=%d, error=%v", req.LocationID, err)
			handlers.RespondInternalError(w)
			return
		}

		status := statusFor(rejection)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /appointments - Booking failed: location_id=%d, error=%v", req.LocationID, err)
		} else {
			h.logger.Warn("POST /appointments - Rejected: code=%s, field=%s, location_id=%d",
				rejection.Code(), rejection.Field, req.LocationID)
		}
		handlers.RespondRejection(w, status, rejection.Code(), rejection.Field, rejection.Message)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, location_id=%d, status=%s",
		result.ID, result.LocationID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func statusFor(rejection *createAppointment.ValidationError) int {
	switch {
	case errors.Is(rejection, createAppointment.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(rejection, createAppointment.ErrReferenceNotFound):
		return http.StatusNotFound
	case errors.Is(rejection, createAppointment.ErrSlotNotAvailable):
		return http.StatusConflict
	case errors.Is(rejection, createAppointment.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
