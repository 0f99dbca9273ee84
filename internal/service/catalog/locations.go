package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	dayOffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/dayoff"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
)

// ListLocations возвращает все локации
func (s *Service) ListLocations(ctx context.Context) ([]*models.LocationResponse, error) {
	locations, err := cache.GetOrLoad(ctx, s.cache, cacheKeyLocations, func(ctx context.Context) ([]*domain.Location, error) {
		return s.locationRepo.List(ctx)
	})
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocationList(locations), nil
}

// GetLocation возвращает локацию вместе с выходными
func (s *Service) GetLocation(ctx context.Context, id int64) (*models.LocationResponse, error) {
	location, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainLocation(location), nil
}

// CreateLocation создает локацию
func (s *Service) CreateLocation(ctx context.Context, req *models.LocationRequest) (*models.LocationResponse, error) {
	location := req.ToDomainLocation()
	if err := validateLocation(location); err != nil {
		s.logger.Warn("CreateLocation: validation failed: %v", err)
		return nil, err
	}

	created, err := s.locationRepo.Create(ctx, location)
	if err != nil {
		s.logger.Error("CreateLocation: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLocation - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyLocations)
	s.logger.Info("CreateLocation: created location id=%d", created.ID)
	return models.FromDomainLocation(created), nil
}

// UpdateLocation полностью заменяет данные локации
func (s *Service) UpdateLocation(ctx context.Context, id int64, req *models.LocationRequest) (*models.LocationResponse, error) {
	location := req.ToDomainLocation()
	if err := validateLocation(location); err != nil {
		s.logger.Warn("UpdateLocation: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	location.ID = id

	if err := s.locationRepo.Update(ctx, location); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("UpdateLocation: location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("UpdateLocation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateLocation - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyLocations)
	s.logger.Info("UpdateLocation: updated location id=%d", id)
	return s.GetLocation(ctx, id)
}

// DeleteLocation удаляет локацию вместе с ее выходными
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.locationRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("DeleteLocation: location id=%d not found", id)
			return ErrLocationNotFound
		}
		s.logger.Error("DeleteLocation: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteLocation - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKeyLocations)
	s.logger.Info("DeleteLocation: deleted location id=%d", id)
	return nil
}

// AddLocationDayOff добавляет выходной локации
func (s *Service) AddLocationDayOff(ctx context.Context, locationID int64, req *models.DayOffRequest) (*models.DayOffResponse, error) {
	dayOff, err := parseDayOff(req)
	if err != nil {
		s.logger.Warn("AddLocationDayOff: validation failed for location=%d: %v", locationID, err)
		return nil, err
	}

	if _, err := s.getLocation(ctx, locationID); err != nil {
		return nil, err
	}

	dayOff.OwnerID = locationID
	created, err := s.locationDaysOff.Create(ctx, dayOff)
	if err != nil {
		if errors.Is(err, dayOffRepo.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
		}
		s.logger.Error("AddLocationDayOff: repository error for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: AddLocationDayOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddLocationDayOff: added day off id=%d to location=%d", created.ID, locationID)
	resp := models.FromDomainDayOff(*created)
	return &resp, nil
}

// DeleteLocationDayOff удаляет выходной локации
func (s *Service) DeleteLocationDayOff(ctx context.Context, locationID, dayOffID int64) error {
	if err := s.locationDaysOff.Delete(ctx, locationID, dayOffID); err != nil {
		if errors.Is(err, dayOffRepo.ErrDayOffNotFound) {
			s.logger.Warn("DeleteLocationDayOff: day off id=%d not found for location=%d", dayOffID, locationID)
			return ErrDayOffNotFound
		}
		s.logger.Error("DeleteLocationDayOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteLocationDayOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLocationDayOff: deleted day off id=%d of location=%d", dayOffID, locationID)
	return nil
}

func (s *Service) getLocation(ctx context.Context, id int64) (*domain.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("GetLocation: location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetLocation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetLocation - repository error: %v", ErrInternal, err)
	}
	return location, nil
}

func validateLocation(l *domain.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(l.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if err := l.WeeklyAvailability.Validate(); err != nil {
		return fmt.Errorf("%w: weeklyAvailability: %v", ErrInvalidInput, err)
	}
	if l.MinBookingTime < 0 || l.MinBookingTime > domain.MaxMinBookingTime {
		return fmt.Errorf("%w: minBookingTime must be between 0 and %d", ErrInvalidInput, domain.MaxMinBookingTime)
	}
	return nil
}
