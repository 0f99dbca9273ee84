package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Weekday keys used in weekly availability
const (
	Monday    = "mon"
	Tuesday   = "tue"
	Wednesday = "wed"
	Thursday  = "thu"
	Friday    = "fri"
	Saturday  = "sat"
	Sunday    = "sun"
)

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayKey returns the availability key ("mon".."sun") for a date
func WeekdayKey(date time.Time) string {
	return weekdayKeys[date.Weekday()]
}

// IsWeekdayKey reports whether key is one of "mon".."sun"
func IsWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}

// TimeWindow daily opening window
type TimeWindow struct {
	From types.TimeString `json:"from"`
	To   types.TimeString `json:"to"`
}

// IsSet returns true if both bounds are present
func (w TimeWindow) IsSet() bool {
	return !w.From.IsZero() && !w.To.IsZero()
}

// WeeklyAvailability weekday key -> window. A missing or empty window means closed.
type WeeklyAvailability map[string]TimeWindow

// WindowFor returns the window for the date's weekday, if the location is open that day
func (w WeeklyAvailability) WindowFor(date time.Time) (TimeWindow, bool) {
	window, ok := w[WeekdayKey(date)]
	if !ok || !window.IsSet() {
		return TimeWindow{}, false
	}
	return window, true
}

// Validate checks weekday keys and time bounds
func (w WeeklyAvailability) Validate() error {
	for key, window := range w {
		if !IsWeekdayKey(key) {
			return fmt.Errorf("unknown weekday %q", key)
		}
		// пустое окно = выходной
		if window.From.IsZero() && window.To.IsZero() {
			continue
		}
		if err := window.From.Validate(); err != nil {
			return fmt.Errorf("%s.from: %w", key, err)
		}
		if err := window.To.Validate(); err != nil {
			return fmt.Errorf("%s.to: %w", key, err)
		}
		if !window.From.IsBefore(window.To) {
			return fmt.Errorf("%s: from must be before to", key)
		}
	}
	return nil
}

// Scan implements sql.Scanner for JSONB columns
func (w *WeeklyAvailability) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*w = WeeklyAvailability{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("weekly availability: unsupported type")
	}

	out := WeeklyAvailability{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("weekly availability: %w", err)
		}
	}
	*w = out
	return nil
}

// Value implements driver.Valuer
func (w WeeklyAvailability) Value() (driver.Value, error) {
	if w == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(w)
}

// Location represents a place where appointments happen
type Location struct {
	ID                 int64
	Name               string
	Address            string
	Phone              string
	WeeklyAvailability WeeklyAvailability
	MinBookingTime     int // часы до начала слота
	DaysOff            []DayOff
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
