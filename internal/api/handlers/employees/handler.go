package employees

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

const (
	msgInvalidEmployeeID  = "Invalid employee id"
	msgInvalidDayOffID    = "Invalid day off id"
	msgInvalidRequestBody = "Invalid request body"
	msgEmployeeNotFound   = "Employee not found"
	msgDayOffNotFound     = "Day off not found"
)

type Handler struct {
	service EmployeeService
	logger  Logger
}

func NewHandler(service EmployeeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/employees, GET /api/v1/admin/employees
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.respondError(w, "GET /employees", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/employees/{employeeId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r, "GET /admin/employees/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/employees/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateEmployee(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/employees", err)
		return
	}

	h.logger.Info("POST /admin/employees - Employee created: employee_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/employees/{employeeId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r, "PUT /admin/employees/{id}")
	if !ok {
		return
	}

	var req models.EmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/employees/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateEmployee(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/employees/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/employees/{id} - Employee updated: employee_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/employees/{employeeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r, "DELETE /admin/employees/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/employees/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/employees/{id} - Employee deleted: employee_id=%d", id)
	handlers.RespondNoContent(w)
}

// AddDayOff POST /api/v1/admin/employees/{employeeId}/days-off
func (h *Handler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r, "POST /admin/employees/{id}/days-off")
	if !ok {
		return
	}

	var req models.DayOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/employees/{id}/days-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddEmployeeDayOff(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "POST /admin/employees/{id}/days-off", err)
		return
	}

	h.logger.Info("POST /admin/employees/{id}/days-off - Day off added: employee_id=%d, day_off_id=%d", id, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteDayOff DELETE /api/v1/admin/employees/{employeeId}/days-off/{dayOffId}
func (h *Handler) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /admin/employees/{id}/days-off/{dayOffId}"

	id, ok := h.employeeID(w, r, op)
	if !ok {
		return
	}

	dayOffID, err := handlers.ParseID(r, "dayOffId")
	if err != nil {
		h.logger.Warn("%s - Invalid day off ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidDayOffID)
		return
	}

	if err := h.service.DeleteEmployeeDayOff(r.Context(), id, dayOffID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Day off deleted: employee_id=%d, day_off_id=%d", op, id, dayOffID)
	handlers.RespondNoContent(w)
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	id, err := handlers.ParseID(r, "employeeId")
	if err != nil {
		h.logger.Warn("%s - Invalid employee ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found", op)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

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
