package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RateLimiter ограничение числа попыток записи с одного адреса
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveForDay(ctx context.Context, locationID int64, date time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// SettingsProvider интерфейс получения настроек оператора
type SettingsProvider interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий записи
type EventPublisher interface {
	PublishAppointmentCreated(appointmentID int64, status string)
}

// Clock интерфейс для получения текущего времени в часовом поясе оператора
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Metrics счетчики созданных и отклоненных записей
type Metrics interface {
	AppointmentCreated(status string)
	SubmissionRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
