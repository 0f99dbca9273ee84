package get_time_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getTimeSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_time_slots"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date  string         `json:"date"`
	Slots []TimeSlotItem `json:"slots"`
}

// TimeSlotItem модель временного слота
type TimeSlotItem struct {
	Start    string `json:"start"`    // "10:00"
	End      string `json:"end"`      // "10:30"
	Capacity int    `json:"capacity"` // 0 = без ограничения
}

// ToUseCaseRequest формирует запрос к use case (с парсингом даты)
func ToUseCaseRequest(locationID, serviceID, employeeID int64, dateStr string) (*getTimeSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getTimeSlots.Request{
		LocationID: locationID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeSlots.Response) *TimeSlotsResponse {
	slots := make([]TimeSlotItem, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, TimeSlotItem{
			Start:    s.Start.String(),
			End:      s.End.String(),
			Capacity: s.Capacity,
		})
	}

	return &TimeSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
