package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
)

// UseCase use case для получения дат, доступных для записи
type UseCase struct {
	locationRepo LocationRepository
	settings     SettingsProvider
	clock        Clock
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	settings SettingsProvider,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		settings:     settings,
		clock:        clock,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: location=%d, privileged=%t", req.LocationID, req.Privileged)

	// 1. Валидация входных данных
	if req.LocationID <= 0 {
		uc.logger.Warn("GetAvailableDates: invalid location id=%d", req.LocationID)
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	// 2. Флаги только для администратора
	flags := req.Flags
	if !req.Privileged {
		flags = domain.AvailabilityFlags{}
	}

	// 3. Получаем локацию с выходными
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailableDates: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Горизонт из настроек оператора
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Расчет дат
	dates := availability.AvailableDates(location, uc.clock.Now(), settings.Horizon(), flags)

	uc.logger.Info("GetAvailableDates: %d dates for location=%d", len(dates), req.LocationID)

	return &Response{Dates: dates}, nil
}
