package locations

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type LocationService interface {
	ListLocations(ctx context.Context) ([]*models.LocationResponse, error)
	GetLocation(ctx context.Context, id int64) (*models.LocationResponse, error)
	CreateLocation(ctx context.Context, req *models.LocationRequest) (*models.LocationResponse, error)
	UpdateLocation(ctx context.Context, id int64, req *models.LocationRequest) (*models.LocationResponse, error)
	DeleteLocation(ctx context.Context, id int64) error
	AddLocationDayOff(ctx context.Context, locationID int64, req *models.DayOffRequest) (*models.DayOffResponse, error)
	DeleteLocationDayOff(ctx context.Context, locationID, dayOffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
