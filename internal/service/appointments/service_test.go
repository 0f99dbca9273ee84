package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type statusEvent struct {
	id       int64
	from, to string
}

type recordingPublisher struct{ events []statusEvent }

func (p *recordingPublisher) PublishStatusChanged(id int64, oldStatus, newStatus string) {
	p.events = append(p.events, statusEvent{id: id, from: oldStatus, to: newStatus})
}

func existingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            5,
		CustomerName:  "Ann Lee",
		CustomerEmail: "ann@example.com",
		CustomerPhone: "+1 555 0100",
		EmployeeID:    1,
		ServiceID:     2,
		LocationID:    3,
		Date:          time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Time:          "10:00",
		Duration:      30,
		Status:        domain.StatusPending,
	}
}

func newTestService(t *testing.T) (*Service, *mockAppointmentRepo, *recordingPublisher) {
	repo := &mockAppointmentRepo{}
	pub := &recordingPublisher{}
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return NewService(repo, pub, logger.Nop()), repo, pub
}

func TestList_BuildsFilter(t *testing.T) {
	svc, repo, _ := newTestService(t)

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	status := domain.StatusApproved
	repo.On("List", mock.Anything, domain.AppointmentFilter{
		Status:     &status,
		LocationID: ptr.Ptr(int64(3)),
		DateFrom:   &from,
		Limit:      20,
	}).Return([]*domain.Appointment{existingAppointment()}, nil).Once()

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Status:     ptr.Ptr("approved"),
		LocationID: ptr.Ptr(int64(3)),
		DateFrom:   ptr.Ptr("2026-10-01"),
		Limit:      20,
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "2026-10-19", resp.Appointments[0].Date)
	assert.Equal(t, "10:00", resp.Appointments[0].Time)
}

func TestList_InvalidFilter(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{DateTo: ptr.Ptr("19.10.2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, appointmentRepo.ErrAppointmentNotFound).Once()

	_, err := svc.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdate_StatusChangePublishesEvent(t *testing.T) {
	svc, repo, pub := newTestService(t)
	repo.On("GetByID", mock.Anything, int64(5)).Return(existingAppointment(), nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusApproved && a.Time == "11:00"
	})).Return(nil).Once()

	resp, err := svc.Update(context.Background(), 5, &models.UpdateAppointmentRequest{
		Status: ptr.Ptr("approved"),
		Time:   ptr.Ptr("11:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, []statusEvent{{id: 5, from: "pending", to: "approved"}}, pub.events)
}

func TestUpdate_SameStatusNoEvent(t *testing.T) {
	svc, repo, pub := newTestService(t)
	repo.On("GetByID", mock.Anything, int64(5)).Return(existingAppointment(), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.Update(context.Background(), 5, &models.UpdateAppointmentRequest{Note: ptr.Ptr("bring forms")})

	require.NoError(t, err)
	assert.Empty(t, pub.events)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateAppointmentRequest
	}{
		{name: "unknown status", req: models.UpdateAppointmentRequest{Status: ptr.Ptr("done")}},
		{name: "bad date", req: models.UpdateAppointmentRequest{Date: ptr.Ptr("2026/10/19")}},
		{name: "bad time", req: models.UpdateAppointmentRequest{Time: ptr.Ptr("9:00")}},
		{name: "bad email", req: models.UpdateAppointmentRequest{CustomerEmail: ptr.Ptr("nope")}},
		{name: "empty name", req: models.UpdateAppointmentRequest{CustomerName: ptr.Ptr(" ")}},
		{name: "past midnight", req: models.UpdateAppointmentRequest{Time: ptr.Ptr("23:45")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := newTestService(t)
			repo.On("GetByID", mock.Anything, int64(5)).Return(existingAppointment(), nil).Once()
			req := tt.req

			_, err := svc.Update(context.Background(), 5, &req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, pub.events)
		})
	}
}

func TestUpdate_RepositoryError(t *testing.T) {
	svc, repo, pub := newTestService(t)
	repo.On("GetByID", mock.Anything, int64(5)).Return(existingAppointment(), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	_, err := svc.Update(context.Background(), 5, &models.UpdateAppointmentRequest{Status: ptr.Ptr("canceled")})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, pub.events)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()
	repo.On("Delete", mock.Anything, int64(6)).Return(appointmentRepo.ErrAppointmentNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.ErrorIs(t, svc.Delete(context.Background(), 6), ErrAppointmentNotFound)
}
