package get_time_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	locationRepo    LocationRepository
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	clock           Clock
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo:    locationRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		clock:           clock,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeSlots: location=%d, service=%d, employee=%d, date=%s",
		req.LocationID, req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Флаги только для администратора
	flags := req.Flags
	if !req.Privileged {
		flags = domain.AvailabilityFlags{}
	}

	// 3. Получаем локацию, услугу и сотрудника
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetTimeSlots: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetTimeSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetTimeSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Режим подсчета вместимости
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Активные записи локации на дату
	appointments, err := uc.appointmentRepo.ListActiveForDay(ctx, req.LocationID, req.Date)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Расчет слотов
	slots := availability.TimeSlots(availability.SlotsInput{
		Location:     location,
		Service:      service,
		Employee:     employee,
		Date:         req.Date,
		Now:          uc.clock.Now(),
		Flags:        flags,
		Mode:         settings.CapacityMode,
		Appointments: appointments,
	})

	uc.logger.Info("GetTimeSlots: %d slots for location=%d, service=%d, date=%s",
		len(slots), req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
