package domain

import "time"

// DayOffOwner kind of entity a day off belongs to
type DayOffOwner string

const (
	DayOffOwnerLocation DayOffOwner = "location"
	DayOffOwnerEmployee DayOffOwner = "employee"
)

// DayOff inclusive date range when the owner is unavailable
type DayOff struct {
	ID        int64
	OwnerType DayOffOwner
	OwnerID   int64
	Reason    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Covers returns true if start_date <= date <= end_date (calendar dates)
func (d DayOff) Covers(date time.Time) bool {
	day := date.Format(DateFormat)
	return d.StartDate.Format(DateFormat) <= day && day <= d.EndDate.Format(DateFormat)
}

// IsValid returns true if the range is not inverted
func (d DayOff) IsValid() bool {
	return !d.StartDate.IsZero() && !d.EndDate.IsZero() &&
		d.StartDate.Format(DateFormat) <= d.EndDate.Format(DateFormat)
}

// AnyCovers returns true if any day off in the list covers the date
func AnyCovers(daysOff []DayOff, date time.Time) bool {
	for _, d := range daysOff {
		if d.Covers(date) {
			return true
		}
	}
	return false
}
