package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	CapacityMode   *string `json:"capacityMode,omitempty"`
	DefaultStatus  *string `json:"defaultStatus,omitempty"`
	MaxBookingDays *int    `json:"maxBookingDays,omitempty"`
}

// SettingsResponse ответ с настройками оператора
type SettingsResponse struct {
	CapacityMode   string `json:"capacityMode"`
	DefaultStatus  string `json:"defaultStatus"`
	MaxBookingDays int    `json:"maxBookingDays"`
}

// FromDomainSettings конвертирует доменные настройки в response
func FromDomainSettings(s domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		CapacityMode:   string(s.CapacityMode),
		DefaultStatus:  string(s.DefaultStatus),
		MaxBookingDays: s.MaxBookingDays,
	}
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s domain.Settings) domain.Settings {
	if r.CapacityMode != nil {
		s.CapacityMode = domain.CapacityMode(*r.CapacityMode)
	}
	if r.DefaultStatus != nil {
		s.DefaultStatus = domain.AppointmentStatus(*r.DefaultStatus)
	}
	if r.MaxBookingDays != nil {
		s.MaxBookingDays = *r.MaxBookingDays
	}
	return s
}
