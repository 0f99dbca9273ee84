package notifications

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Bundle данные для подстановки в шаблоны.
// Service, Employee и Location могут отсутствовать, если сущность удалена.
type Bundle struct {
	Appointment *domain.Appointment
	Service     *domain.Service
	Employee    *domain.Employee
	Location    *domain.Location
}

// Site данные сайта для тегов {site_name} и {site_url}
type Site struct {
	Name string
	URL  string
}

// MergeTags строит таблицу тегов для подстановки
func MergeTags(b Bundle, site Site, loc *time.Location) map[string]string {
	a := b.Appointment

	date := a.Date.Format(domain.DateFormat)
	clock := a.Time.String()

	var startTime, endTime string
	if !a.Time.IsZero() {
		start := a.StartsAt(loc)
		startTime = start.Format(domain.TimeFormat)
		if a.Duration > 0 {
			endTime = start.Add(time.Duration(a.Duration) * time.Minute).Format(domain.TimeFormat)
		}
	}

	tags := map[string]string{
		"{appointment_id}":         strconv.FormatInt(a.ID, 10),
		"{appointment_status}":     string(a.Status),
		"{appointment_date}":       date,
		"{appointment_time}":       clock,
		"{appointment_datetime}":   strings.TrimSpace(date + " " + clock),
		"{appointment_duration}":   strconv.Itoa(a.Duration),
		"{appointment_start_time}": startTime,
		"{appointment_end_time}":   endTime,
		"{customer_name}":          a.CustomerName,
		"{customer_email}":         a.CustomerEmail,
		"{customer_phone}":         a.CustomerPhone,
		"{customer_note}":          a.Note,
		"{service_name}":           "",
		"{service_duration}":       "",
		"{employee_name}":          "",
		"{employee_email}":         "",
		"{employee_phone}":         "",
		"{location_name}":          "",
		"{location_address}":       "",
		"{location_phone}":         "",
		"{site_name}":              site.Name,
		"{site_url}":               site.URL,
	}

	if b.Service != nil {
		tags["{service_name}"] = b.Service.Name
		tags["{service_duration}"] = strconv.Itoa(b.Service.Duration)
	}
	if b.Employee != nil {
		tags["{employee_name}"] = b.Employee.FullName()
		tags["{employee_email}"] = b.Employee.Email
		tags["{employee_phone}"] = b.Employee.Phone
	}
	if b.Location != nil {
		tags["{location_name}"] = b.Location.Name
		tags["{location_address}"] = b.Location.Address
		tags["{location_phone}"] = b.Location.Phone
	}

	return tags
}

// Render подставляет теги в шаблон. Неизвестные теги остаются как есть.
func Render(template string, tags map[string]string) string {
	if template == "" {
		return ""
	}

	pairs := make([]string, 0, len(tags)*2)
	for tag, value := range tags {
		pairs = append(pairs, tag, value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
