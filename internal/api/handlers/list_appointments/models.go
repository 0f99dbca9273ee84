package list_appointments

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// DefaultLimit размер страницы по умолчанию
const DefaultLimit = 50

// ToServiceRequest формирует запрос к сервису из query параметров
// Query params: status, locationId, employeeId, serviceId, dateFrom, dateTo, limit, offset
func ToServiceRequest(r *http.Request) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		Status:   handlers.QueryString(r, "status"),
		DateFrom: handlers.QueryString(r, "dateFrom"),
		DateTo:   handlers.QueryString(r, "dateTo"),
		Limit:    DefaultLimit,
	}

	var err error
	if req.LocationID, err = handlers.QueryInt64(r, "locationId"); err != nil {
		return nil, err
	}
	if req.EmployeeID, err = handlers.QueryInt64(r, "employeeId"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = handlers.QueryInt64(r, "serviceId"); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if req.Offset, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}

	return req, nil
}
