package dayoff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository выходные одного типа владельца (локации или сотрудника).
// Таблица и колонка владельца задаются при создании.
type Repository struct {
	db          dbmetrics.DBExecutor
	owner       domain.DayOffOwner
	table       string
	ownerColumn string
}

// NewLocationRepository выходные локаций
func NewLocationRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{
		db:          db,
		owner:       domain.DayOffOwnerLocation,
		table:       "location_days_off",
		ownerColumn: "location_id",
	}
}

// NewEmployeeRepository выходные сотрудников
func NewEmployeeRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{
		db:          db,
		owner:       domain.DayOffOwnerEmployee,
		table:       "employee_days_off",
		ownerColumn: "employee_id",
	}
}

// ListByOwner возвращает выходные владельца, отсортированные по дате начала
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", r.ownerColumn, "reason", "start_date", "end_date", "created_at").
		From(r.table).
		Where(squirrel.Eq{r.ownerColumn: ownerID}).
		OrderBy("start_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	daysOff := make([]domain.DayOff, 0)
	for rows.Next() {
		d := domain.DayOff{OwnerType: r.owner}
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Reason, &d.StartDate, &d.EndDate, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		daysOff = append(daysOff, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return daysOff, nil
}

// Create добавляет выходной владельцу
func (r *Repository) Create(ctx context.Context, d *domain.DayOff) (*domain.DayOff, error) {
	if !d.IsValid() {
		return nil, ErrInvalidRange
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(r.table).
		Columns(r.ownerColumn, "reason", "start_date", "end_date").
		Values(
			d.OwnerID,
			d.Reason,
			d.StartDate.Format(domain.DateFormat),
			d.EndDate.Format(domain.DateFormat),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.OwnerType = r.owner
	d.CreatedAt = createdAt.Time

	return d, nil
}

// Delete удаляет выходной; выходной чужого владельца считается не найденным
func (r *Repository) Delete(ctx context.Context, ownerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(r.table).
		Where(squirrel.Eq{"id": id, r.ownerColumn: ownerID}).
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
		return ErrDayOffNotFound
	}

	return nil
}

// DeleteByOwner удаляет все выходные владельца
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(r.table).
		Where(squirrel.Eq{r.ownerColumn: ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByOwner - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByOwner - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
