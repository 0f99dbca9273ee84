package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

const (
	msgInvalidLocationID = "Invalid location id"
	msgLocationNotFound  = "Location not found"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/available-dates
// Query params (только для администратора): ignoreOffDays, ignoreAvailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.ParseID(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/available-dates - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		LocationID: locationID,
		Flags:      handlers.ParseFlags(r),
		Privileged: middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/available-dates - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLocationID)

		default:
			h.logger.Error("GET /locations/{id}/available-dates - Failed to get dates: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/available-dates - Dates retrieved: location_id=%d, count=%d", locationID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, AvailableDatesResponse{Dates: result.Dates})
}
