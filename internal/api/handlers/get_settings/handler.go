package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed to get settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
