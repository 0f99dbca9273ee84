package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
)

// ListServices возвращает все услуги
func (s *Service) ListServices(ctx context.Context) ([]*models.ServiceResponse, error) {
	services, err := cache.GetOrLoad(ctx, s.cache, cacheKeyServices, func(ctx context.Context) ([]*domain.Service, error) {
		return s.serviceRepo.List(ctx)
	})
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service := req.ToDomainService()
	if err := validateService(service); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyServices)
	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService полностью заменяет данные услуги
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service := req.ToDomainService()
	if err := validateService(service); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	service.ID = id

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyServices)
	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// DeleteService удаляет услугу
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyServices)
	s.logger.Info("DeleteService: deleted service id=%d", id)
	return nil
}

func validateService(svc *domain.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(svc.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if svc.Duration < 1 || svc.Duration > domain.MaxServiceDuration {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxServiceDuration)
	}
	if svc.SlotCapacity < 0 {
		return fmt.Errorf("%w: slotCapacity must not be negative", ErrInvalidInput)
	}
	if svc.MinBookingTime < 0 || svc.MinBookingTime > domain.MaxMinBookingTime {
		return fmt.Errorf("%w: minBookingTime must be between 0 and %d", ErrInvalidInput, domain.MaxMinBookingTime)
	}
	return nil
}
