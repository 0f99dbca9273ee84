package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "locations"

var columns = []string{
	"id",
	"name",
	"address",
	"phone",
	"weekly_availability",
	"min_booking_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий локаций
type Repository struct {
	db      DBExecutor
	daysOff DaysOffRepository
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor, daysOff DaysOffRepository) *Repository {
	return &Repository{db: db, daysOff: daysOff}
}

// List возвращает все локации без выходных, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// GetByID получает локацию вместе с выходными
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	loc, err := scanLocation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	loc.DaysOff, err = r.daysOff.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - load days off: %v", ErrExecQuery, err)
	}

	return loc, nil
}

// Create создает локацию
func (r *Repository) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "address", "phone", "weekly_availability", "min_booking_time").
		Values(loc.Name, loc.Address, loc.Phone, loc.WeeklyAvailability, loc.MinBookingTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&loc.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time
	if loc.DaysOff == nil {
		loc.DaysOff = []domain.DayOff{}
	}

	return loc, nil
}

// Update обновляет поля локации
func (r *Repository) Update(ctx context.Context, loc *domain.Location) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("phone", loc.Phone).
		Set("weekly_availability", loc.WeeklyAvailability).
		Set("min_booking_time", loc.MinBookingTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": loc.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLocationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	loc.UpdatedAt = updatedAt.Time
	return nil
}

// Delete удаляет локацию вместе с её выходными.
// Вызывающий код оборачивает удаление в транзакцию.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.daysOff.DeleteByOwner(ctx, id); err != nil {
		return fmt.Errorf("%w: Delete - delete days off: %v", ErrExecQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var loc domain.Location
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.Phone,
		&loc.WeeklyAvailability,
		&loc.MinBookingTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time

	return &loc, nil
}
