package employees

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]*models.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id int64) (*models.EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req *models.EmployeeRequest) (*models.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id int64, req *models.EmployeeRequest) (*models.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id int64) error
	AddEmployeeDayOff(ctx context.Context, employeeID int64, req *models.DayOffRequest) (*models.DayOffResponse, error)
	DeleteEmployeeDayOff(ctx context.Context, employeeID, dayOffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
