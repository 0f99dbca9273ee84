package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	dayOffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/dayoff"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	locationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/location"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/cache"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockLocationRepo struct{ mock.Mock }

func (m *mockLocationRepo) List(ctx context.Context) ([]*domain.Location, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLocationRepo) Create(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	args := m.Called(ctx, l)
	if v := args.Get(0); v != nil {
		return v.(*domain.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLocationRepo) Update(ctx context.Context, l *domain.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLocationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmployeeRepo struct{ mock.Mock }

func (m *mockEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, e)
	if v := args.Get(0); v != nil {
		return v.(*domain.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDayOffRepo struct{ mock.Mock }

func (m *mockDayOffRepo) Create(ctx context.Context, d *domain.DayOff) (*domain.DayOff, error) {
	args := m.Called(ctx, d)
	if v := args.Get(0); v != nil {
		return v.(*domain.DayOff), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDayOffRepo) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type passthroughTx struct{ calls int }

func (tx *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixture struct {
	locations       *mockLocationRepo
	employees       *mockEmployeeRepo
	services        *mockServiceRepo
	locationDaysOff *mockDayOffRepo
	employeeDaysOff *mockDayOffRepo
	tx              *passthroughTx
	svc             *Service
}

func newFixture(t *testing.T, c *cache.Cache) *fixture {
	f := &fixture{
		locations:       &mockLocationRepo{},
		employees:       &mockEmployeeRepo{},
		services:        &mockServiceRepo{},
		locationDaysOff: &mockDayOffRepo{},
		employeeDaysOff: &mockDayOffRepo{},
		tx:              &passthroughTx{},
	}
	f.svc = NewService(f.locations, f.employees, f.services, f.locationDaysOff, f.employeeDaysOff, f.tx, c, logger.Nop())
	t.Cleanup(func() {
		f.locations.AssertExpectations(t)
		f.employees.AssertExpectations(t)
		f.services.AssertExpectations(t)
		f.locationDaysOff.AssertExpectations(t)
		f.employeeDaysOff.AssertExpectations(t)
	})
	return f
}

func newCache(t *testing.T) *cache.Cache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute, "test:", nil)
}

func validLocationRequest() *models.LocationRequest {
	return &models.LocationRequest{
		Name: "  Main office ",
		WeeklyAvailability: map[string]models.TimeWindow{
			"mon": {From: "09:00", To: "17:00"},
			"sat": {},
		},
		MinBookingTime: 2,
	}
}

func TestListLocations_CachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newCache(t))

	f.locations.On("List", mock.Anything).Return([]*domain.Location{{ID: 1, Name: "A"}}, nil).Twice()
	f.locations.On("Create", mock.Anything, mock.Anything).Return(&domain.Location{ID: 2, Name: "Main office"}, nil).Once()

	first, err := f.svc.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// второй вызов берется из кэша
	_, err = f.svc.ListLocations(ctx)
	require.NoError(t, err)

	_, err = f.svc.CreateLocation(ctx, validLocationRequest())
	require.NoError(t, err)

	_, err = f.svc.ListLocations(ctx)
	require.NoError(t, err)
}

func TestCreateLocation_TrimsName(t *testing.T) {
	f := newFixture(t, nil)

	f.locations.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Location) bool {
		return l.Name == "Main office" && l.WeeklyAvailability["mon"].From == "09:00"
	})).Return(&domain.Location{ID: 7, Name: "Main office"}, nil).Once()

	resp, err := f.svc.CreateLocation(context.Background(), validLocationRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
}

func TestCreateLocation_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.LocationRequest)
	}{
		{name: "empty name", mutate: func(r *models.LocationRequest) { r.Name = "  " }},
		{name: "unknown weekday", mutate: func(r *models.LocationRequest) {
			r.WeeklyAvailability["funday"] = models.TimeWindow{From: "09:00", To: "10:00"}
		}},
		{name: "inverted window", mutate: func(r *models.LocationRequest) {
			r.WeeklyAvailability["mon"] = models.TimeWindow{From: "17:00", To: "09:00"}
		}},
		{name: "bad time", mutate: func(r *models.LocationRequest) {
			r.WeeklyAvailability["mon"] = models.TimeWindow{From: "9am", To: "17:00"}
		}},
		{name: "negative lead time", mutate: func(r *models.LocationRequest) { r.MinBookingTime = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := validLocationRequest()
			tt.mutate(req)

			_, err := f.svc.CreateLocation(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateLocation_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.locations.On("Update", mock.Anything, mock.Anything).Return(locationRepo.ErrLocationNotFound).Once()

	_, err := f.svc.UpdateLocation(context.Background(), 5, validLocationRequest())

	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestDeleteLocation_RunsInTransaction(t *testing.T) {
	f := newFixture(t, nil)
	f.locations.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

	require.NoError(t, f.svc.DeleteLocation(context.Background(), 3))
	assert.Equal(t, 1, f.tx.calls)
}

func TestDeleteLocation_RepositoryError(t *testing.T) {
	f := newFixture(t, nil)
	f.locations.On("Delete", mock.Anything, int64(3)).Return(errors.New("boom")).Once()

	err := f.svc.DeleteLocation(context.Background(), 3)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestAddLocationDayOff(t *testing.T) {
	f := newFixture(t, nil)
	f.locations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Location{ID: 1}, nil).Once()
	f.locationDaysOff.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.DayOff) bool {
		return d.OwnerID == 1 && d.Reason == "Holiday" && d.StartDate.Format(domain.DateFormat) == "2026-12-24"
	})).Return(func() *domain.DayOff {
		start, _ := time.Parse(domain.DateFormat, "2026-12-24")
		end, _ := time.Parse(domain.DateFormat, "2026-12-26")
		return &domain.DayOff{ID: 11, OwnerID: 1, Reason: "Holiday", StartDate: start, EndDate: end}
	}(), nil).Once()

	resp, err := f.svc.AddLocationDayOff(context.Background(), 1, &models.DayOffRequest{
		Reason:    " Holiday ",
		StartDate: "2026-12-24",
		EndDate:   "2026-12-26",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "2026-12-26", resp.EndDate)
}

func TestAddLocationDayOff_InvalidRange(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.AddLocationDayOff(context.Background(), 1, &models.DayOffRequest{
		StartDate: "2026-12-26",
		EndDate:   "2026-12-24",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddLocationDayOff_BadDate(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.AddLocationDayOff(context.Background(), 1, &models.DayOffRequest{
		StartDate: "24.12.2026",
		EndDate:   "2026-12-24",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddLocationDayOff_UnknownLocation(t *testing.T) {
	f := newFixture(t, nil)
	f.locations.On("GetByID", mock.Anything, int64(9)).Return(nil, locationRepo.ErrLocationNotFound).Once()

	_, err := f.svc.AddLocationDayOff(context.Background(), 9, &models.DayOffRequest{
		StartDate: "2026-12-24",
		EndDate:   "2026-12-24",
	})

	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestDeleteEmployeeDayOff_ForeignOwner(t *testing.T) {
	f := newFixture(t, nil)
	f.employeeDaysOff.On("Delete", mock.Anything, int64(2), int64(40)).Return(dayOffRepo.ErrDayOffNotFound).Once()

	err := f.svc.DeleteEmployeeDayOff(context.Background(), 2, 40)

	assert.ErrorIs(t, err, ErrDayOffNotFound)
}

func TestCreateEmployee_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.EmployeeRequest
	}{
		{name: "missing last name", req: models.EmployeeRequest{FirstName: "Ann", Email: "ann@example.com"}},
		{name: "missing email", req: models.EmployeeRequest{FirstName: "Ann", LastName: "Lee"}},
		{name: "bad email", req: models.EmployeeRequest{FirstName: "Ann", LastName: "Lee", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := tt.req

			_, err := f.svc.CreateEmployee(context.Background(), &req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.employees.On("GetByID", mock.Anything, int64(4)).Return(nil, employeeRepo.ErrEmployeeNotFound).Once()

	_, err := f.svc.GetEmployee(context.Background(), 4)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestCreateService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.ServiceRequest
	}{
		{name: "missing name", req: models.ServiceRequest{Duration: 30}},
		{name: "zero duration", req: models.ServiceRequest{Name: "Cut"}},
		{name: "too long duration", req: models.ServiceRequest{Name: "Cut", Duration: domain.MaxServiceDuration + 1}},
		{name: "negative capacity", req: models.ServiceRequest{Name: "Cut", Duration: 30, SlotCapacity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := tt.req

			_, err := f.svc.CreateService(context.Background(), &req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteService_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.services.On("Delete", mock.Anything, int64(8)).Return(serviceRepo.ErrServiceNotFound).Once()

	err := f.svc.DeleteService(context.Background(), 8)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
