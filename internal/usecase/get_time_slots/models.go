package get_time_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса слотов на дату
type Request struct {
	LocationID int64
	ServiceID  int64
	EmployeeID int64
	Date       time.Time // дата без времени, в часовом поясе оператора
	Flags      domain.AvailabilityFlags
	// Privileged флаги учитываются только для администратора
	Privileged bool
}

// Response модель ответа со слотами, отсортированными по началу
type Response struct {
	Date  time.Time
	Slots []domain.Slot
}
