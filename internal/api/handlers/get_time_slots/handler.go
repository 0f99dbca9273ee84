package get_time_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	getTimeSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_time_slots"
)

const (
	msgInvalidLocationID = "Invalid location id"
	msgInvalidServiceID  = "Invalid or missing serviceId"
	msgInvalidEmployeeID = "Invalid or missing employeeId"
	msgMissingDate       = "Date is required"
	msgInvalidDate       = "Invalid date format, expected YYYY-MM-DD"
	msgLocationNotFound  = "Location not found"
	msgServiceNotFound   = "Service not found"
	msgEmployeeNotFound  = "Employee not found"
)

type Handler struct {
	useCase GetTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/time-slots
// Query params: date (YYYY-MM-DD), serviceId, employeeId; ignoreOffDays, ignoreAvailability для администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.ParseID(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/time-slots - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /locations/{id}/time-slots - Invalid service ID: %q", query.Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	employeeID, err := strconv.ParseInt(query.Get("employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /locations/{id}/time-slots - Invalid employee ID: %q", query.Get("employeeId"))
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /locations/{id}/time-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(locationID, serviceID, employeeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/time-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	useCaseReq.Flags = handlers.ParseFlags(r)
	useCaseReq.Privileged = middleware.IsAdmin(r.Context())

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTimeSlots.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/time-slots - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getTimeSlots.ErrServiceNotFound):
			h.logger.Warn("GET /locations/{id}/time-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getTimeSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /locations/{id}/time-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getTimeSlots.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /locations/{id}/time-slots - Failed to get slots: location_id=%d, service_id=%d, error=%v",
				locationID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/time-slots - Slots retrieved: location_id=%d, service_id=%d, date=%s, slots_count=%d",
		locationID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
