package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	dayOffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/dayoff"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
)

// ListEmployees возвращает всех сотрудников
func (s *Service) ListEmployees(ctx context.Context) ([]*models.EmployeeResponse, error) {
	employees, err := cache.GetOrLoad(ctx, s.cache, cacheKeyEmployees, func(ctx context.Context) ([]*domain.Employee, error) {
		return s.employeeRepo.List(ctx)
	})
	if err != nil {
		s.logger.Error("ListEmployees: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEmployees - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployeeList(employees), nil
}

// GetEmployee возвращает сотрудника вместе с выходными
func (s *Service) GetEmployee(ctx context.Context, id int64) (*models.EmployeeResponse, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEmployee(employee), nil
}

// CreateEmployee создает сотрудника
func (s *Service) CreateEmployee(ctx context.Context, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	employee := req.ToDomainEmployee()
	if err := validateEmployee(employee); err != nil {
		s.logger.Warn("CreateEmployee: validation failed: %v", err)
		return nil, err
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		s.logger.Error("CreateEmployee: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateEmployee - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyEmployees)
	s.logger.Info("CreateEmployee: created employee id=%d", created.ID)
	return models.FromDomainEmployee(created), nil
}

// UpdateEmployee полностью заменяет данные сотрудника
func (s *Service) UpdateEmployee(ctx context.Context, id int64, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	employee := req.ToDomainEmployee()
	if err := validateEmployee(employee); err != nil {
		s.logger.Warn("UpdateEmployee: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	employee.ID = id

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("UpdateEmployee: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("UpdateEmployee: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateEmployee - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyEmployees)
	s.logger.Info("UpdateEmployee: updated employee id=%d", id)
	return s.GetEmployee(ctx, id)
}

// DeleteEmployee удаляет сотрудника вместе с его выходными
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.employeeRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("DeleteEmployee: employee id=%d not found", id)
			return ErrEmployeeNotFound
		}
		s.logger.Error("DeleteEmployee: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteEmployee - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyEmployees)
	s.logger.Info("DeleteEmployee: deleted employee id=%d", id)
	return nil
}

// AddEmployeeDayOff добавляет выходной сотрудника
func (s *Service) AddEmployeeDayOff(ctx context.Context, employeeID int64, req *models.DayOffRequest) (*models.DayOffResponse, error) {
	dayOff, err := parseDayOff(req)
	if err != nil {
		s.logger.Warn("AddEmployeeDayOff: validation failed for employee=%d: %v", employeeID, err)
		return nil, err
	}

	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	dayOff.OwnerID = employeeID
	created, err := s.employeeDaysOff.Create(ctx, dayOff)
	if err != nil {
		if errors.Is(err, dayOffRepo.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
		}
		s.logger.Error("AddEmployeeDayOff: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: AddEmployeeDayOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddEmployeeDayOff: added day off id=%d to employee=%d", created.ID, employeeID)
	resp := models.FromDomainDayOff(*created)
	return &resp, nil
}

// DeleteEmployeeDayOff удаляет выходной сотрудника
func (s *Service) DeleteEmployeeDayOff(ctx context.Context, employeeID, dayOffID int64) error {
	if err := s.employeeDaysOff.Delete(ctx, employeeID, dayOffID); err != nil {
		if errors.Is(err, dayOffRepo.ErrDayOffNotFound) {
			s.logger.Warn("DeleteEmployeeDayOff: day off id=%d not found for employee=%d", dayOffID, employeeID)
			return ErrDayOffNotFound
		}
		s.logger.Error("DeleteEmployeeDayOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteEmployeeDayOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEmployeeDayOff: deleted day off id=%d of employee=%d", dayOffID, employeeID)
	return nil
}

func (s *Service) getEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetEmployee: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetEmployee: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetEmployee - repository error: %v", ErrInternal, err)
	}
	return employee, nil
}

func validateEmployee(e *domain.Employee) error {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Role = strings.TrimSpace(e.Role)

	if e.FirstName == "" || e.LastName == "" {
		return fmt.Errorf("%w: firstName and lastName are required", ErrInvalidInput)
	}
	if len(e.FirstName) > domain.MaxNameLength || len(e.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if e.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(e.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}
