package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Slot represents a time slot available for booking
type Slot struct {
	Start    types.TimeString
	End      types.TimeString
	Capacity int // remaining spots; 0 = unlimited
}

// IsUnlimited returns true if the slot has no capacity limit
func (s *Slot) IsUnlimited() bool {
	return s.Capacity == 0
}
