package handlers

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ParseFlags читает флаги обхода правил доступности из query.
// Учитываются use case только для администратора.
func ParseFlags(r *http.Request) domain.AvailabilityFlags {
	q := r.URL.Query()
	return domain.AvailabilityFlags{
		IgnoreOffDays:      parseBool(q.Get("ignoreOffDays")),
		IgnoreAvailability: parseBool(q.Get("ignoreAvailability")),
	}
}

// QueryInt64 читает необязательный числовой параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryString читает необязательный строковый параметр
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
