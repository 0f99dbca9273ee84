package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
)

const cacheKey = "settings"

// Service сервис настроек оператора.
// Сохраненные значения перекрывают значения по умолчанию из конфигурации.
type Service struct {
	repo     SettingsRepository
	defaults domain.Settings
	cache    *cache.Cache
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, defaults domain.Settings, c *cache.Cache, logger Logger) *Service {
	if c == nil {
		c = cache.Disabled()
	}
	return &Service{
		repo:     repo,
		defaults: defaults,
		cache:    c,
		logger:   logger,
	}
}

// Get возвращает действующие настройки
func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	return cache.GetOrLoad(ctx, s.cache, cacheKey, s.load)
}

func (s *Service) load(ctx context.Context) (domain.Settings, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	result := s.defaults

	// некорректное сохраненное значение заменяется значением по умолчанию
	if v, ok := values[settingsRepo.KeyCapacityMode]; ok {
		if mode, err := domain.ParseCapacityMode(v); err == nil {
			result.CapacityMode = mode
		} else {
			s.logger.Warn("Get: ignoring stored %s=%q: %v", settingsRepo.KeyCapacityMode, v, err)
		}
	}
	if v, ok := values[settingsRepo.KeyDefaultStatus]; ok {
		if status, err := domain.ParseStatus(v); err == nil {
			result.DefaultStatus = status
		} else {
			s.logger.Warn("Get: ignoring stored %s=%q: %v", settingsRepo.KeyDefaultStatus, v, err)
		}
	}
	if v, ok := values[settingsRepo.KeyMaxBookingDays]; ok {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			result.MaxBookingDays = days
		} else {
			s.logger.Warn("Get: ignoring stored %s=%q", settingsRepo.KeyMaxBookingDays, v)
		}
	}

	return result, nil
}

// GetSettings возвращает настройки для API
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings")

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := req.ApplyTo(current)
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values := make(map[string]string)
	if req.CapacityMode != nil {
		values[settingsRepo.KeyCapacityMode] = string(updated.CapacityMode)
	}
	if req.DefaultStatus != nil {
		values[settingsRepo.KeyDefaultStatus] = string(updated.DefaultStatus)
	}
	if req.MaxBookingDays != nil {
		values[settingsRepo.KeyMaxBookingDays] = strconv.Itoa(updated.MaxBookingDays)
	}

	if err := s.repo.Upsert(ctx, values); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(ctx, cacheKey)

	s.logger.Info("Update: settings updated: mode=%s, status=%s, horizon=%d",
		updated.CapacityMode, updated.DefaultStatus, updated.MaxBookingDays)
	return models.FromDomainSettings(updated), nil
}
