package domain

import (
	"strings"
	"time"
)

// Service bookable service
type Service struct {
	ID             int64
	Name           string
	Duration       int // минуты, > 0
	SlotCapacity   int // 0 = без ограничения
	MinBookingTime int // часы
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsUnlimited returns true if concurrent bookings are not limited
func (s *Service) IsUnlimited() bool {
	return s.SlotCapacity == 0
}

// Employee staff member performing services
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
	DaysOff   []DayOff
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "first last"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
