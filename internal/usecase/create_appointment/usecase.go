package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
)

// UseCase use case для записи на прием
type UseCase struct {
	limiter         RateLimiter
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	locationRepo    LocationRepository
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	txManager       TransactionManager
	publisher       EventPublisher
	clock           Clock
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	limiter RateLimiter,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	locationRepo LocationRepository,
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	clock Clock,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		limiter:         limiter,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		locationRepo:    locationRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		txManager:       txManager,
		publisher:       publisher,
		clock:           clock,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case записи.
// Проверки выполняются по порядку, первая неудачная прерывает обработку.
// Повторная проверка слота и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: ip=%s, location=%d, service=%d, employee=%d, date=%s, time=%s",
		req.ClientIP, req.LocationID, req.ServiceID, req.EmployeeID, req.Date, req.Time)

	// 1. Ограничение попыток по адресу источника
	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, req.ClientIP)
		if err != nil {
			// недоступность хранилища лимитов не блокирует запись
			uc.logger.Error("CreateAppointment: rate limiter failed for ip=%s: %v", req.ClientIP, err)
		} else if !allowed {
			uc.logger.Warn("CreateAppointment: rate limit exceeded for ip=%s", req.ClientIP)
			return nil, uc.rejected(reject(ErrRateLimited, "", MsgRateLimited))
		}
	}

	normalize(req)

	// 2. Обязательные поля
	if missing := missingFields(req); len(missing) > 0 {
		uc.logger.Warn("CreateAppointment: missing fields: %s", strings.Join(missing, ", "))
		return nil, uc.rejected(reject(ErrInvalidInput, missing[0], MsgMissingFields+strings.Join(missing, ", ")))
	}

	// 3. Формат имени, email, телефона
	if rej := validateFormat(req); rej != nil {
		uc.logger.Warn("CreateAppointment: invalid %s", rej.Field)
		return nil, uc.rejected(rej)
	}

	// 4. Дата и время в часовом поясе оператора, не в прошлом
	startsAt, startTime, ok := parseDateTime(req.Date, req.Time, uc.clock.Location())
	if !ok {
		uc.logger.Warn("CreateAppointment: invalid date/time %s %s", req.Date, req.Time)
		return nil, uc.rejected(reject(ErrInvalidInput, "date", MsgInvalidDateTime))
	}

	now := uc.clock.Now()
	if startsAt.Before(now) {
		uc.logger.Warn("CreateAppointment: date/time %s is in the past", startsAt.Format(time.RFC3339))
		return nil, uc.rejected(reject(ErrInvalidInput, "date", MsgPastDateTime))
	}

	date := time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, startsAt.Location())

	// 5. Существование услуги, сотрудника, локации (в этом порядке)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, uc.rejected(reject(ErrReferenceNotFound, "serviceId", MsgInvalidService))
		}
		return nil, uc.internal("failed to get service", err)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, uc.rejected(reject(ErrReferenceNotFound, "employeeId", MsgInvalidEmployee))
		}
		return nil, uc.internal("failed to get employee", err)
	}

	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateAppointment: location id=%d not found", req.LocationID)
			return nil, uc.rejected(reject(ErrReferenceNotFound, "locationId", MsgInvalidLocation))
		}
		return nil, uc.internal("failed to get location", err)
	}

	// 6. Длительность берется из услуги
	if req.Duration != 0 && req.Duration != service.Duration {
		uc.logger.Warn("CreateAppointment: client duration %d overridden by service duration %d for service id=%d",
			req.Duration, service.Duration, service.ID)
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, uc.internal("failed to get settings", err)
	}

	flags := req.Flags
	if !req.Privileged {
		flags = domain.AvailabilityFlags{}
	}

	var result *domain.Appointment

	// 7-8. Повторная проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointments, err := uc.appointmentRepo.ListActiveForDay(txCtx, location.ID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		slots := availability.TimeSlots(availability.SlotsInput{
			Location:     location,
			Service:      service,
			Employee:     employee,
			Date:         date,
			Now:          now,
			Flags:        flags,
			Mode:         settings.CapacityMode,
			Appointments: appointments,
		})

		if _, ok := availability.FindSlot(slots, startTime); !ok {
			return reject(ErrSlotNotAvailable, "time", MsgSlotUnavailable)
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Note:          req.Note,
			EmployeeID:    employee.ID,
			ServiceID:     service.ID,
			LocationID:    location.ID,
			Date:          date,
			Time:          startTime,
			Duration:      service.Duration,
			Status:        settings.DefaultStatus,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		var rej *ValidationError
		if errors.As(err, &rej) {
			uc.logger.Warn("CreateAppointment: slot %s %s not available at location=%d",
				req.Date, req.Time, req.LocationID)
			return nil, uc.rejected(rej)
		}
		return nil, uc.internal("failed to book", err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", result.ID, result.Status)
	uc.countCreated(string(result.Status))

	// событие публикуется только после фиксации транзакции
	if uc.publisher != nil {
		uc.publisher.PublishAppointmentCreated(result.ID, string(result.Status))
	}

	return &Response{
		ID:            result.ID,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		Note:          result.Note,
		EmployeeID:    result.EmployeeID,
		ServiceID:     result.ServiceID,
		LocationID:    result.LocationID,
		Date:          result.Date,
		Time:          result.Time,
		Duration:      result.Duration,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// internal логирует детали и возвращает общий отказ без подробностей
func (uc *UseCase) internal(message string, err error) error {
	uc.logger.Error("CreateAppointment: %s: %v", message, err)
	return uc.rejected(reject(ErrInternal, "", MsgBookingFailed))
}

func (uc *UseCase) rejected(rej *ValidationError) *ValidationError {
	if uc.metrics != nil {
		uc.metrics.SubmissionRejected(rej.Code())
	}
	return rej
}

func (uc *UseCase) countCreated(status string) {
	if uc.metrics != nil {
		uc.metrics.AppointmentCreated(status)
	}
}
