package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusDeclined AppointmentStatus = "declined"
	StatusCanceled AppointmentStatus = "canceled"
)

// ParseStatus validates a status string
func ParseStatus(s string) (AppointmentStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// IsActive returns true if the status consumes slot capacity
func (s AppointmentStatus) IsActive() bool {
	for _, st := range ActiveStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Appointment represents a customer booking
type Appointment struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          string

	EmployeeID int64
	ServiceID  int64
	LocationID int64

	Date     time.Time        // дата без времени
	Time     types.TimeString // время начала
	Duration int              // минуты, берется из услуги на момент записи
	Status   AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment consumes slot capacity
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// EndMinutes returns the end of the appointment in minutes from midnight
func (a *Appointment) EndMinutes() int {
	return a.Time.Minutes() + a.Duration
}

// StartsAt returns the appointment start as an instant in loc
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.Time.OnDate(a.Date, loc)
}

// AppointmentFilter фильтр списка записей для администратора
type AppointmentFilter struct {
	Status     *AppointmentStatus
	LocationID *int64
	EmployeeID *int64
	ServiceID  *int64
	DateFrom   *time.Time // включительно
	DateTo     *time.Time // включительно
	Limit      int        // 0 = без ограничения
	Offset     int
}
