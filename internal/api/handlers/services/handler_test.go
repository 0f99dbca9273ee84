package services

import (
	"context"
	"errors"
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

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListServices(ctx context.Context) ([]*models.ServiceResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) DeleteService(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(svc *mockCatalog) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/services", h.List).Methods(http.MethodGet)
	r.HandleFunc("/services", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/services/{serviceId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/services/{serviceId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/services/{serviceId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func TestHandler_List(t *testing.T) {
	svc := &mockCatalog{}
	svc.On("ListServices", mock.Anything).Return([]*models.ServiceResponse{
		{ID: 1, Name: "Консультация", Duration: 30, SlotCapacity: 1},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slotCapacity":1`)
}

func TestHandler_Create(t *testing.T) {
	svc := &mockCatalog{}
	svc.On("CreateService", mock.Anything, &models.ServiceRequest{Name: "Массаж", Duration: 60}).
		Return(&models.ServiceResponse{ID: 7, Name: "Массаж", Duration: 60}, nil)

	body := `{"name":"Массаж","duration":60}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	svc.AssertExpectations(t)
}

func TestHandler_CreateInvalidBody(t *testing.T) {
	svc := &mockCatalog{}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateService", mock.Anything, mock.Anything)
}

func TestHandler_UpdateValidationError(t *testing.T) {
	svc := &mockCatalog{}
	svc.On("UpdateService", mock.Anything, int64(3), mock.Anything).
		Return(nil, fmt.Errorf("%w: duration must be between 1 and 1440", catalog.ErrInvalidInput))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/services/3", strings.NewReader(`{"name":"x","duration":0}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"invalid_input"`)
	assert.Contains(t, rec.Body.String(), "duration must be between 1 and 1440")
	assert.NotContains(t, rec.Body.String(), catalog.ErrInvalidInput.Error())
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: catalog.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: fmt.Errorf("%w: GetService: %v", catalog.ErrInternal, errors.New("db down")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCatalog{}
			svc.On("GetService", mock.Anything, int64(5)).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/5", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

func TestHandler_InvalidID(t *testing.T) {
	svc := &mockCatalog{}

	for _, path := range []string{"/services/abc", "/services/0", "/services/-1"} {
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
	svc.AssertNotCalled(t, "DeleteService", mock.Anything, mock.Anything)
}

func TestHandler_Delete(t *testing.T) {
	svc := &mockCatalog{}
	svc.On("DeleteService", mock.Anything, int64(4)).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/services/4", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
