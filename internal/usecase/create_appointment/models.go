package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель заявки на запись
type Request struct {
	ClientIP string // адрес источника для ограничения попыток

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          string

	EmployeeID int64
	ServiceID  int64
	LocationID int64

	Date string // YYYY-MM-DD
	Time string // HH:MM

	// Duration длительность от клиента; сохраняется длительность услуги
	Duration int

	Flags domain.AvailabilityFlags
	// Privileged флаги учитываются только для администратора
	Privileged bool
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          string
	EmployeeID    int64
	ServiceID     int64
	LocationID    int64
	Date          time.Time
	Time          types.TimeString
	Duration      int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
