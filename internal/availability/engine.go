// Package availability вычисляет доступные для записи даты и временные слоты.
// Все функции чистые: текущее время, режим подсчета вместимости и записи
// на день передаются вызывающей стороной.
package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fullDayWindow окно, подставляемое при ignore_availability
var fullDayWindow = domain.TimeWindow{From: "00:00", To: "23:59"}

// AvailableDates возвращает даты (YYYY-MM-DD) от сегодняшней до today+horizonDays включительно,
// в которые локация открыта и не находится в выходном.
// horizonDays <= 0 заменяется на значение по умолчанию.
func AvailableDates(loc *domain.Location, now time.Time, horizonDays int, flags domain.AvailabilityFlags) []string {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultMaxBookingDays
	}

	dates := make([]string, 0)
	if loc == nil {
		return dates
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := 0; i <= horizonDays; i++ {
		day := today.AddDate(0, 0, i)

		if !flags.IgnoreAvailability {
			if _, open := loc.WeeklyAvailability.WindowFor(day); !open {
				continue
			}
		}

		if !flags.IgnoreOffDays && domain.AnyCovers(loc.DaysOff, day) {
			continue
		}

		dates = append(dates, day.Format(domain.DateFormat))
	}

	return dates
}

// SlotsInput входные данные для расчета слотов на дату
type SlotsInput struct {
	Location *domain.Location
	Service  *domain.Service
	Employee *domain.Employee
	Date     time.Time
	Now      time.Time
	Flags    domain.AvailabilityFlags
	Mode     domain.CapacityMode

	// Appointments записи локации на дату; неактивные статусы игнорируются
	Appointments []*domain.Appointment
}

// TimeSlots возвращает слоты длительностью service.Duration, отсортированные по началу.
// Слот остается, если его начало не раньше now + lead time и в нем есть свободная вместимость.
// Для услуги без ограничения вместимости capacity = 0.
func TimeSlots(in SlotsInput) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if in.Location == nil || in.Service == nil || in.Service.Duration <= 0 {
		return slots
	}

	if !in.Flags.IgnoreOffDays && in.Employee != nil && domain.AnyCovers(in.Employee.DaysOff, in.Date) {
		return slots
	}

	window := fullDayWindow
	if !in.Flags.IgnoreAvailability {
		w, open := in.Location.WeeklyAvailability.WindowFor(in.Date)
		if !open {
			return slots
		}
		window = w
	}

	from, to := window.From.Minutes(), window.To.Minutes()
	if from < 0 || to < 0 {
		return slots
	}

	leadHours := max(in.Location.MinBookingTime, in.Service.MinBookingTime)
	earliest := in.Now.Add(time.Duration(leadHours) * time.Hour)
	loc := in.Now.Location()

	var serviceFilter *int64
	if in.Mode == domain.CapacityModeService {
		serviceFilter = &in.Service.ID
	}

	duration := in.Service.Duration
	for start := from; start+duration <= to; start += duration {
		end := start + duration

		startAt := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), start/60, start%60, 0, 0, loc)
		if startAt.Before(earliest) {
			continue
		}

		capacity := 0
		if !in.Service.IsUnlimited() {
			taken := CountOverlapping(in.Appointments, in.Location.ID, serviceFilter, start, end)
			remaining := in.Service.SlotCapacity - taken
			if remaining <= 0 {
				continue
			}
			capacity = remaining
		}

		slots = append(slots, domain.Slot{
			Start:    minutesToTime(start),
			End:      minutesToTime(end),
			Capacity: capacity,
		})
	}

	return slots
}

// Overlaps реализует правило пересечения полуоткрытых интервалов [start, end):
// соседние интервалы (конец одного = начало другого) не пересекаются
func Overlaps(existingStart, existingEnd, newStart, newEnd int) bool {
	return existingStart < newEnd && existingEnd > newStart
}

// CountOverlapping считает активные записи локации, пересекающиеся с [start, end).
// serviceID != nil ограничивает подсчет одной услугой.
func CountOverlapping(appointments []*domain.Appointment, locationID int64, serviceID *int64, start, end int) int {
	count := 0
	for _, a := range appointments {
		if a == nil || !a.IsActive() || a.LocationID != locationID {
			continue
		}
		if serviceID != nil && a.ServiceID != *serviceID {
			continue
		}
		aStart := a.Time.Minutes()
		if aStart < 0 {
			continue
		}
		if Overlaps(aStart, aStart+a.Duration, start, end) {
			count++
		}
	}
	return count
}

// FindSlot ищет слот с указанным началом
func FindSlot(slots []domain.Slot, start types.TimeString) (domain.Slot, bool) {
	for _, s := range slots {
		if s.Start == start {
			return s, true
		}
	}
	return domain.Slot{}, false
}

func minutesToTime(minutes int) types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		// конец окна не выходит за 23:59, сюда не попадаем
		return types.TimeString("23:59")
	}
	return ts
}
