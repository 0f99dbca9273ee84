package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
)

// Ключи кэша списков
const (
	cacheKeyLocations = "locations"
	cacheKeyEmployees = "employees"
	cacheKeyServices  = "services"
)

// Service сервис справочников: локации, сотрудники, услуги и их выходные.
// Списки кэшируются и инвалидируются при любом изменении сущности этого вида.
type Service struct {
	locationRepo    LocationRepository
	employeeRepo    EmployeeRepository
	serviceRepo     ServiceRepository
	locationDaysOff DayOffRepository
	employeeDaysOff DayOffRepository
	txManager       TransactionManager
	cache           *cache.Cache
	logger          Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	locationRepo LocationRepository,
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	locationDaysOff DayOffRepository,
	employeeDaysOff DayOffRepository,
	txManager TransactionManager,
	c *cache.Cache,
	logger Logger,
) *Service {
	if c == nil {
		c = cache.Disabled()
	}
	return &Service{
		locationRepo:    locationRepo,
		employeeRepo:    employeeRepo,
		serviceRepo:     serviceRepo,
		locationDaysOff: locationDaysOff,
		employeeDaysOff: employeeDaysOff,
		txManager:       txManager,
		cache:           c,
		logger:          logger,
	}
}

// parseDayOff валидирует запрос выходного
func parseDayOff(req *models.DayOffRequest) (*domain.DayOff, error) {
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxDayOffReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	start, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	end, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	dayOff := &domain.DayOff{Reason: reason, StartDate: start, EndDate: end}
	if !dayOff.IsValid() {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}

	return dayOff, nil
}
