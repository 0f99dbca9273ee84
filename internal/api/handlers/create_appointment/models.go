package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Note          string `json:"note"`
	EmployeeID    int64  `json:"employeeId"`
	ServiceID     int64  `json:"serviceId"`
	LocationID    int64  `json:"locationId"`
	Date          string `json:"date"` // "2026-10-19"
	Time          string `json:"time"` // "10:00"
	Duration      int    `json:"duration,omitempty"`

	// Учитываются только для администратора
	IgnoreOffDays      bool `json:"ignoreOffDays,omitempty"`
	IgnoreAvailability bool `json:"ignoreAvailability,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Note          string `json:"note,omitempty"`
	EmployeeID    int64  `json:"employeeId"`
	ServiceID     int64  `json:"serviceId"`
	LocationID    int64  `json:"locationId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Duration      int    `json:"duration"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время проверяются в use case.
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientIP string, privileged bool) *createAppointment.Request {
	return &createAppointment.Request{
		ClientIP:      clientIP,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Note:          r.Note,
		EmployeeID:    r.EmployeeID,
		ServiceID:     r.ServiceID,
		LocationID:    r.LocationID,
		Date:          r.Date,
		Time:          r.Time,
		Duration:      r.Duration,
		Flags: domain.AvailabilityFlags{
			IgnoreOffDays:      r.IgnoreOffDays,
			IgnoreAvailability: r.IgnoreAvailability,
		},
		Privileged: privileged,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Note:          resp.Note,
		EmployeeID:    resp.EmployeeID,
		ServiceID:     resp.ServiceID,
		LocationID:    resp.LocationID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		Duration:      resp.Duration,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
