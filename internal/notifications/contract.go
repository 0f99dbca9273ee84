package notifications

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс для загрузки записи
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// ServiceRepository интерфейс для загрузки услуги
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository интерфейс для загрузки сотрудника
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// LocationRepository интерфейс для загрузки локации
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// Mailer доставка письма одному получателю
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчик отправленных уведомлений
type Metrics interface {
	NotificationSent(result string)
}
