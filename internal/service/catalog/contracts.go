package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	List(ctx context.Context) ([]*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, location *domain.Location) (*domain.Location, error)
	Update(ctx context.Context, location *domain.Location) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// DayOffRepository интерфейс репозитория выходных одного типа владельца
type DayOffRepository interface {
	Create(ctx context.Context, dayOff *domain.DayOff) (*domain.DayOff, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
