package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// SettingsProvider интерфейс получения настроек оператора
type SettingsProvider interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// Clock интерфейс для получения текущего времени в часовом поясе оператора
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
