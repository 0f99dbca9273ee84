package employee

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

const table = "employees"

var columns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"role",
	"created_at",
	"updated_at",
}

// Repository репозиторий сотрудников
type Repository struct {
	db      DBExecutor
	daysOff DaysOffRepository
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor, daysOff DaysOffRepository) *Repository {
	return &Repository{db: db, daysOff: daysOff}
}

// List возвращает всех сотрудников без выходных
func (r *Repository) List(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("last_name ASC", "first_name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

// GetByID получает сотрудника вместе с выходными
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	e.DaysOff, err = r.daysOff.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - load days off: %v", ErrExecQuery, err)
	}

	return e, nil
}

// Create создает сотрудника
func (r *Repository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("first_name", "last_name", "email", "phone", "role").
		Values(e.FirstName, e.LastName, e.Email, e.Phone, e.Role).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	if e.DaysOff == nil {
		e.DaysOff = []domain.DayOff{}
	}

	return e, nil
}

// Update обновляет поля сотрудника
func (r *Repository) Update(ctx context.Context, e *domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("first_name", e.FirstName).
		Set("last_name", e.LastName).
		Set("email", e.Email).
		Set("phone", e.Phone).
		Set("role", e.Role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	e.UpdatedAt = updatedAt.Time
	return nil
}

// Delete удаляет сотрудника вместе с его выходными.
// Записи сотрудника не удаляются.
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
		return ErrEmployeeNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.Role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
