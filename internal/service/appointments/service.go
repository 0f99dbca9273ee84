package appointments

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис управления записями для администратора.
// Изменения администратора не проходят повторную проверку слота.
type Service struct {
	appointmentRepo AppointmentRepository
	events          EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, events EventPublisher, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		events:          events,
		logger:          logger,
	}
}

// List получает записи с фильтрацией.
// Сортировка: сначала новые.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// Update частично обновляет запись.
// Смена статуса публикует appointment.status_changed.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d", id)

	appointment, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}
	oldStatus := appointment.Status

	if err := req.ApplyTo(appointment); err != nil {
		s.logger.Warn("Update: invalid request for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateAppointment(appointment); err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found during update", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if appointment.Status != oldStatus {
		s.logger.Info("Update: appointment id=%d status %s -> %s", id, oldStatus, appointment.Status)
		s.events.PublishStatusChanged(id, string(oldStatus), string(appointment.Status))
	}

	s.logger.Info("Update: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted appointment id=%d", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func validateAppointment(a *domain.Appointment) error {
	a.CustomerName = strings.TrimSpace(a.CustomerName)
	a.CustomerEmail = strings.TrimSpace(a.CustomerEmail)
	a.CustomerPhone = strings.TrimSpace(a.CustomerPhone)
	a.Note = strings.TrimSpace(a.Note)

	if a.CustomerName == "" || len(a.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: invalid customerName", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(a.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}
	if len(a.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}
	if a.Duration < 1 || a.Duration > domain.MaxServiceDuration {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxServiceDuration)
	}
	if a.EndMinutes() > types.MinutesPerDay {
		return fmt.Errorf("%w: appointment must end within the day", ErrInvalidInput)
	}
	return nil
}
