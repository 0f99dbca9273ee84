package create_appointment

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()]{6,30}$`)
)

// normalize обрезает пробелы в текстовых полях
func normalize(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Note = strings.TrimSpace(req.Note)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
}

// missingFields возвращает незаполненные обязательные поля в фиксированном порядке
func missingFields(req *Request) []string {
	var missing []string
	if req.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if req.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if req.EmployeeID <= 0 {
		missing = append(missing, "employeeId")
	}
	if req.ServiceID <= 0 {
		missing = append(missing, "serviceId")
	}
	if req.LocationID <= 0 {
		missing = append(missing, "locationId")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// validateFormat проверяет имя, email и телефон
func validateFormat(req *Request) *ValidationError {
	if !nameRe.MatchString(req.CustomerName) || len(req.CustomerName) > domain.MaxNameLength {
		return reject(ErrInvalidInput, "customerName", MsgInvalidName)
	}

	if !isEmail(req.CustomerEmail) {
		return reject(ErrInvalidInput, "customerEmail", MsgInvalidEmail)
	}

	// пустой телефон тоже не проходит: поле обязательно по формату
	if !phoneRe.MatchString(req.CustomerPhone) {
		return reject(ErrInvalidInput, "customerPhone", MsgInvalidPhone)
	}

	if len(req.Note) > domain.MaxNoteLength {
		return reject(ErrInvalidInput, "note", "Note is too long.")
	}

	return nil
}

// isEmail принимает только один адрес без отображаемого имени, с доменом
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	host := s[at+1:]
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}

// parseDateTime разбирает дату и время в часовом поясе оператора.
// Значение должно совпадать с исходными строками (без нормализации 25:00 и т.п.).
func parseDateTime(date, clock string, loc *time.Location) (time.Time, types.TimeString, bool) {
	dt, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, "", false
	}
	if dt.Format(domain.DateFormat) != date || dt.Format(domain.TimeFormat) != clock {
		return time.Time{}, "", false
	}
	return dt, types.TimeString(clock), true
}
