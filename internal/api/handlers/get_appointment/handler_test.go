package get_appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.AppointmentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		result     *models.AppointmentResponse
		err        error
		callsSvc   bool
		wantStatus int
	}{
		{name: "ok", path: "/appointments/5", result: &models.AppointmentResponse{ID: 5}, callsSvc: true, wantStatus: http.StatusOK},
		{name: "not found", path: "/appointments/5", err: appointments.ErrAppointmentNotFound, callsSvc: true, wantStatus: http.StatusNotFound},
		{
			name:       "internal",
			path:       "/appointments/5",
			err:        fmt.Errorf("%w: GetByID - repository error: conn reset", appointments.ErrInternal),
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
		},
		{name: "bad id", path: "/appointments/abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.callsSvc {
				svc.On("GetByID", mock.Anything, int64(5)).Return(tt.result, tt.err)
			}

			r := mux.NewRouter()
			r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, logger.Nop()).Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "conn reset")
			svc.AssertExpectations(t)
		})
	}
}
