package domain

// Default configuration values
const (
	DefaultMaxBookingDays = 90 // горизонт бронирования в днях
	DefaultCapacityMode   = CapacityModeLocation
	DefaultStatus         = StatusPending
)

// Business validation constants
const (
	MaxBookingDaysLimit   = 365
	MaxServiceDuration    = 24 * 60 // минут
	MaxMinBookingTime     = 24 * 30 // часов
	MaxNameLength         = 255
	MaxNoteLength         = 2000
	MaxDayOffReasonLength = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, занимающих вместимость слота
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
}

// AllStatuses все допустимые статусы записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusDeclined,
	StatusCanceled,
}
