package settings

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "settings"

// Ключи настроек оператора
const (
	KeyCapacityMode   = "capacity_mode"
	KeyDefaultStatus  = "default_status"
	KeyMaxBookingDays = "max_booking_days"
)

// Repository репозиторий настроек (ключ-значение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все сохраненные настройки.
// Отсутствующие ключи не возвращаются: значения по умолчанию подставляет сервис.
func (r *Repository) GetAll(ctx context.Context) (map[string]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From(table).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

// Upsert сохраняет значения настроек, перезаписывая существующие ключи
func (r *Repository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("key", "value")

	for key, value := range values {
		insertBuilder = insertBuilder.Values(key, value)
	}

	query, args, err := insertBuilder.
		SuffixExpr(squirrel.Expr("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
