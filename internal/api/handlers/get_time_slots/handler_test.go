package get_time_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getTimeSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_time_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getTimeSlots.Request) (*getTimeSlots.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*getTimeSlots.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(uc *mockUseCase, adminToken string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Admin(adminToken))
	r.HandleFunc("/locations/{locationId}/time-slots", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &mockUseCase{}
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getTimeSlots.Request) bool {
		return r.LocationID == 3 && r.ServiceID == 2 && r.EmployeeID == 1 && r.Date.Equal(monday) && !r.Privileged
	})).Return(&getTimeSlots.Response{
		Date: monday,
		Slots: []domain.Slot{
			{Start: "09:00", End: "09:30", Capacity: 1},
			{Start: "09:30", End: "10:00", Capacity: 0},
		},
	}, nil).Once()

	rec := httptest.NewRecorder()
	newRouter(uc, "secret").ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/locations/3/time-slots?date=2026-10-19&serviceId=2&employeeId=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2026-10-19","slots":[
		{"start":"09:00","end":"09:30","capacity":1},
		{"start":"09:30","end":"10:00","capacity":0}
	]}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_AdminFlags(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getTimeSlots.Request) bool {
		return r.Privileged && r.Flags.IgnoreAvailability
	})).Return(&getTimeSlots.Response{Date: time.Now()}, nil).Once()

	req := httptest.NewRequest(http.MethodGet,
		"/locations/3/time-slots?date=2026-10-19&serviceId=2&employeeId=1&ignoreAvailability=1", nil)
	req.Header.Set(middleware.AdminHeader, "secret")
	rec := httptest.NewRecorder()
	newRouter(uc, "secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_BadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "missing service", url: "/locations/3/time-slots?date=2026-10-19&employeeId=1"},
		{name: "missing employee", url: "/locations/3/time-slots?date=2026-10-19&serviceId=2"},
		{name: "missing date", url: "/locations/3/time-slots?serviceId=2&employeeId=1"},
		{name: "bad date", url: "/locations/3/time-slots?date=19.10.2026&serviceId=2&employeeId=1"},
		{name: "bad location", url: "/locations/abc/time-slots?date=2026-10-19&serviceId=2&employeeId=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := httptest.NewRecorder()
			newRouter(uc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_NotFound(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getTimeSlots.ErrServiceNotFound).Once()

	rec := httptest.NewRecorder()
	newRouter(uc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/locations/3/time-slots?date=2026-10-19&serviceId=2&employeeId=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Service not found"}}`, rec.Body.String())
}
