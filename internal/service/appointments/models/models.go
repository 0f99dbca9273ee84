package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
)

// Request модели

// ListAppointmentsRequest фильтр списка записей
type ListAppointmentsRequest struct {
	Status     *string `json:"status,omitempty"`
	LocationID *int64  `json:"locationId,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	ServiceID  *int64  `json:"serviceId,omitempty"`
	DateFrom   *string `json:"dateFrom,omitempty"` // YYYY-MM-DD включительно
	DateTo     *string `json:"dateTo,omitempty"`   // YYYY-MM-DD включительно
	Limit      int     `json:"limit,omitempty"`
	Offset     int     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		LocationID: r.LocationID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.DateFrom != nil {
		from, err := time.Parse(domain.DateFormat, *r.DateFrom)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateFrom = &from
	}

	if r.DateTo != nil {
		to, err := time.Parse(domain.DateFormat, *r.DateTo)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.DateTo = &to
	}

	return filter, nil
}

// UpdateAppointmentRequest частичное обновление записи администратором.
// Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Note          *string `json:"note,omitempty"`
	EmployeeID    *int64  `json:"employeeId,omitempty"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	LocationID    *int64  `json:"locationId,omitempty"`
	Date          *string `json:"date,omitempty"`
	Time          *string `json:"time,omitempty"`
	Duration      *int    `json:"duration,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ApplyTo применяет изменения к записи
func (r *UpdateAppointmentRequest) ApplyTo(a *domain.Appointment) error {
	if r.CustomerName != nil {
		a.CustomerName = *r.CustomerName
	}
	if r.CustomerEmail != nil {
		a.CustomerEmail = *r.CustomerEmail
	}
	if r.CustomerPhone != nil {
		a.CustomerPhone = *r.CustomerPhone
	}
	if r.Note != nil {
		a.Note = *r.Note
	}
	if r.EmployeeID != nil {
		a.EmployeeID = *r.EmployeeID
	}
	if r.ServiceID != nil {
		a.ServiceID = *r.ServiceID
	}
	if r.LocationID != nil {
		a.LocationID = *r.LocationID
	}
	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return ErrInvalidDate
		}
		a.Date = date
	}
	if r.Time != nil {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return ErrInvalidTime
		}
		a.Time = t
	}
	if r.Duration != nil {
		a.Duration = *r.Duration
	}
	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return ErrInvalidStatus
		}
		a.Status = status
	}
	return nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Note          string    `json:"note,omitempty"`
	EmployeeID    int64     `json:"employeeId"`
	ServiceID     int64     `json:"serviceId"`
	LocationID    int64     `json:"locationId"`
	Date          string    `json:"date"` // "2026-10-19"
	Time          string    `json:"time"` // "10:00"
	Duration      int       `json:"duration"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		Note:          a.Note,
		EmployeeID:    a.EmployeeID,
		ServiceID:     a.ServiceID,
		LocationID:    a.LocationID,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.Time.String(),
		Duration:      a.Duration,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}
