package domain

import "fmt"

// CapacityMode defines which appointments compete for slot capacity
type CapacityMode string

const (
	// CapacityModeLocation all active appointments at the location on the date
	CapacityModeLocation CapacityMode = "location"
	// CapacityModeService only appointments for the same service
	CapacityModeService CapacityMode = "service"
)

// ParseCapacityMode validates a capacity mode string
func ParseCapacityMode(s string) (CapacityMode, error) {
	switch CapacityMode(s) {
	case CapacityModeLocation, CapacityModeService:
		return CapacityMode(s), nil
	default:
		return "", fmt.Errorf("unknown capacity mode %q", s)
	}
}

// AvailabilityFlags privileged overrides of availability rules
type AvailabilityFlags struct {
	IgnoreOffDays      bool
	IgnoreAvailability bool
}

// Settings operator-wide booking settings
type Settings struct {
	CapacityMode   CapacityMode
	DefaultStatus  AppointmentStatus
	MaxBookingDays int
}

// DefaultSettings returns built-in defaults
func DefaultSettings() Settings {
	return Settings{
		CapacityMode:   DefaultCapacityMode,
		DefaultStatus:  DefaultStatus,
		MaxBookingDays: DefaultMaxBookingDays,
	}
}

// Horizon returns the booking horizon in days, falling back to the default
func (s Settings) Horizon() int {
	if s.MaxBookingDays <= 0 {
		return DefaultMaxBookingDays
	}
	return s.MaxBookingDays
}

// Validate checks settings values
func (s Settings) Validate() error {
	if _, err := ParseCapacityMode(string(s.CapacityMode)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(s.DefaultStatus)); err != nil {
		return err
	}
	if s.MaxBookingDays < 1 || s.MaxBookingDays > MaxBookingDaysLimit {
		return fmt.Errorf("max booking days must be between 1 and %d", MaxBookingDaysLimit)
	}
	return nil
}
