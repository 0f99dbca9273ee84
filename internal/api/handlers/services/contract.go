package services

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type ServiceCatalog interface {
	ListServices(ctx context.Context) ([]*models.ServiceResponse, error)
	GetService(ctx context.Context, id int64) (*models.ServiceResponse, error)
	CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	DeleteService(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
