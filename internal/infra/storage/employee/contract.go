package employee

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// DaysOffRepository выходные сотрудников
type DaysOffRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.DayOff, error)
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
