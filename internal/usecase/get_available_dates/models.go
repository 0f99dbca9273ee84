package get_available_dates

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса доступных дат
type Request struct {
	LocationID int64
	Flags      domain.AvailabilityFlags
	// Privileged флаги учитываются только для администратора
	Privileged bool
}

// Response модель ответа со списком дат в формате YYYY-MM-DD
type Response struct {
	Dates []string
}
