package employees

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListEmployees(ctx context.Context) ([]*models.EmployeeResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.EmployeeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetEmployee(ctx context.Context, id int64) (*models.EmployeeResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.EmployeeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) CreateEmployee(ctx context.Context, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.EmployeeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) UpdateEmployee(ctx context.Context, id int64, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.EmployeeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) DeleteEmployee(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) AddEmployeeDayOff(ctx context.Context, employeeID int64, req *models.DayOffRequest) (*models.DayOffResponse, error) {
	args := m.Called(ctx, employeeID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.DayOffResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) DeleteEmployeeDayOff(ctx context.Context, employeeID, dayOffID int64) error {
	return m.Called(ctx, employeeID, dayOffID).Error(0)
}

func newRouter(svc *mockService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/employees", h.List).Methods(http.MethodGet)
	r.HandleFunc("/employees", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/employees/{employeeId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/employees/{employeeId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/employees/{employeeId}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/employees/{employeeId}/days-off", h.AddDayOff).Methods(http.MethodPost)
	r.HandleFunc("/employees/{employeeId}/days-off/{dayOffId}", h.DeleteDayOff).Methods(http.MethodDelete)
	return r
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateEmployee", mock.Anything, &models.EmployeeRequest{FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com"}).
		Return(&models.EmployeeResponse{ID: 3, FirstName: "Ivan", LastName: "Petrov"}, nil)

	body := `{"firstName":"Ivan","lastName":"Petrov","email":"ivan@example.com"}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"firstName":"Ivan"`)
	svc.AssertExpectations(t)
}

func TestHandler_CreateValidationError(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateEmployee", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: email is invalid", catalog.ErrInvalidInput))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"email":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"email is invalid"`)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		setup      func(svc *mockService)
		wantStatus int
	}{
		{
			name:   "get not found",
			method: http.MethodGet,
			path:   "/employees/9",
			setup: func(svc *mockService) {
				svc.On("GetEmployee", mock.Anything, int64(9)).Return(nil, catalog.ErrEmployeeNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "update internal",
			method: http.MethodPut,
			path:   "/employees/9",
			setup: func(svc *mockService) {
				svc.On("UpdateEmployee", mock.Anything, int64(9), mock.Anything).
					Return(nil, fmt.Errorf("%w: UpdateEmployee - repository error: secret", catalog.ErrInternal))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "delete ok",
			method: http.MethodDelete,
			path:   "/employees/9",
			setup: func(svc *mockService) {
				svc.On("DeleteEmployee", mock.Anything, int64(9)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "day off not found",
			method: http.MethodDelete,
			path:   "/employees/9/days-off/4",
			setup: func(svc *mockService) {
				svc.On("DeleteEmployeeDayOff", mock.Anything, int64(9), int64(4)).Return(catalog.ErrDayOffNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad day off id",
			method:     http.MethodDelete,
			path:       "/employees/9/days-off/x",
			setup:      func(*mockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad employee id",
			method:     http.MethodGet,
			path:       "/employees/0",
			setup:      func(*mockService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			tt.setup(svc)

			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_AddDayOff(t *testing.T) {
	svc := &mockService{}
	req := &models.DayOffRequest{Reason: "Отпуск", StartDate: "2026-11-02", EndDate: "2026-11-06"}
	svc.On("AddEmployeeDayOff", mock.Anything, int64(3), req).
		Return(&models.DayOffResponse{ID: 11, StartDate: "2026-11-02", EndDate: "2026-11-06"}, nil)

	body := `{"reason":"Отпуск","startDate":"2026-11-02","endDate":"2026-11-06"}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees/3/days-off", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":11`)
	svc.AssertExpectations(t)
}
