package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var errNotFound = errors.New("not found")

type fakeRepos struct {
	appointment *domain.Appointment
	service     *domain.Service
	employee    *domain.Employee
	location    *domain.Location
}

type appointmentRepo struct{ r *fakeRepos }

func (f appointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.r.appointment == nil || f.r.appointment.ID != id {
		return nil, errNotFound
	}
	return f.r.appointment, nil
}

type serviceRepo struct{ r *fakeRepos }

func (f serviceRepo) GetByID(context.Context, int64) (*domain.Service, error) {
	if f.r.service == nil {
		return nil, errNotFound
	}
	return f.r.service, nil
}

type employeeRepo struct{ r *fakeRepos }

func (f employeeRepo) GetByID(context.Context, int64) (*domain.Employee, error) {
	if f.r.employee == nil {
		return nil, errNotFound
	}
	return f.r.employee, nil
}

type locationRepo struct{ r *fakeRepos }

func (f locationRepo) GetByID(context.Context, int64) (*domain.Location, error) {
	if f.r.location == nil {
		return nil, errNotFound
	}
	return f.r.location, nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newFixture() *fakeRepos {
	return &fakeRepos{
		appointment: &domain.Appointment{
			ID:            15,
			CustomerName:  "Anna Petrova",
			CustomerEmail: "anna@example.com",
			CustomerPhone: "+7 900 000-00-00",
			Note:          "first visit",
			EmployeeID:    2,
			ServiceID:     3,
			LocationID:    4,
			Date:          time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			Time:          types.TimeString("09:30"),
			Duration:      45,
			Status:        domain.StatusPending,
		},
		service:  &domain.Service{ID: 3, Name: "Consultation", Duration: 45},
		employee: &domain.Employee{ID: 2, FirstName: "Ivan", LastName: "Sidorov", Email: "ivan@example.com"},
		location: &domain.Location{ID: 4, Name: "Central", Address: "Main st. 1"},
	}
}

func newDispatcher(cfg Config, templates Templates, repos *fakeRepos, mailer Mailer) *Dispatcher {
	return NewDispatcher(cfg, templates,
		appointmentRepo{repos}, serviceRepo{repos}, employeeRepo{repos}, locationRepo{repos},
		mailer, time.UTC, logger.Nop(), nil)
}

func TestParseTemplates(t *testing.T) {
	data := []byte(`
customer:
  pending:
    subject: "Booking {appointment_id} received"
    body: "Hello {customer_name}"
admin:
  approved:
    subject: "Approved"
    body: ""
    enabled: false
`)

	templates, err := ParseTemplates(data)
	require.NoError(t, err)

	tmpl, ok := templates.Lookup(RecipientCustomer, "pending")
	require.True(t, ok)
	assert.True(t, tmpl.IsEnabled())
	assert.Equal(t, "Hello {customer_name}", tmpl.Body)

	tmpl, ok = templates.Lookup(RecipientAdmin, "approved")
	require.True(t, ok)
	assert.False(t, tmpl.IsEnabled())

	_, ok = templates.Lookup(RecipientEmployee, "pending")
	assert.False(t, ok)
}

func TestParseTemplates_UnknownRecipient(t *testing.T) {
	_, err := ParseTemplates([]byte("manager:\n  pending:\n    subject: x\n"))
	assert.ErrorIs(t, err, ErrLoadTemplates)
}

func TestMergeTags(t *testing.T) {
	repos := newFixture()
	tags := MergeTags(Bundle{
		Appointment: repos.appointment,
		Service:     repos.service,
		Employee:    repos.employee,
		Location:    repos.location,
	}, Site{Name: "Clinic", URL: "https://clinic.example"}, time.UTC)

	assert.Equal(t, "15", tags["{appointment_id}"])
	assert.Equal(t, "2026-10-19 09:30", tags["{appointment_datetime}"])
	assert.Equal(t, "09:30", tags["{appointment_start_time}"])
	assert.Equal(t, "10:15", tags["{appointment_end_time}"])
	assert.Equal(t, "Ivan Sidorov", tags["{employee_name}"])
	assert.Equal(t, "Central", tags["{location_name}"])
	assert.Equal(t, "Clinic", tags["{site_name}"])
	assert.Equal(t, "first visit", tags["{customer_note}"])
}

func TestMergeTags_MissingEntities(t *testing.T) {
	repos := newFixture()
	tags := MergeTags(Bundle{Appointment: repos.appointment}, Site{}, time.UTC)

	assert.Equal(t, "", tags["{service_name}"])
	assert.Equal(t, "", tags["{employee_name}"])
	assert.Equal(t, "", tags["{location_address}"])
}

func TestRender(t *testing.T) {
	tags := map[string]string{"{customer_name}": "Anna", "{appointment_id}": "15"}

	assert.Equal(t, "Hi Anna, #15 {unknown}", Render("Hi {customer_name}, #{appointment_id} {unknown}", tags))
	assert.Equal(t, "", Render("", tags))
}

func TestDispatcher_SendsPerRecipient(t *testing.T) {
	repos := newFixture()
	mailer := &recordingMailer{}
	templates := Templates{
		RecipientCustomer: {"pending": {Subject: "Received #{appointment_id}", Body: "Hi {customer_name}"}},
		RecipientEmployee: {"pending": {Subject: "New booking", Body: "{appointment_datetime}"}},
		RecipientAdmin:    {"pending": {Subject: "", Body: "   "}},
	}
	d := newDispatcher(Config{Enabled: true, AdminRecipients: []string{"boss@example.com"}}, templates, repos, mailer)

	bus := events.NewBus(nil)
	d.Subscribe(bus)
	bus.PublishAppointmentCreated(15, "pending")

	require.Len(t, d.queue, 1)
	d.process(context.Background(), <-d.queue)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, sentMail{to: "anna@example.com", subject: "Received #15", body: "Hi Anna Petrova"}, mailer.sent[0])
	assert.Equal(t, "ivan@example.com", mailer.sent[1].to)
	assert.Equal(t, "2026-10-19 09:30", mailer.sent[1].body)
}

func TestDispatcher_StatusChangedUsesNewStatus(t *testing.T) {
	repos := newFixture()
	mailer := &recordingMailer{}
	disabled := false
	templates := Templates{
		RecipientCustomer: {
			"pending":  {Subject: "pending"},
			"approved": {Subject: "approved {appointment_id}"},
		},
		RecipientAdmin: {"approved": {Subject: "approved", Enabled: &disabled}},
	}
	d := newDispatcher(Config{Enabled: true, AdminEmail: "admin@example.com"}, templates, repos, mailer)

	bus := events.NewBus(nil)
	d.Subscribe(bus)
	bus.PublishStatusChanged(15, "pending", "approved")

	d.process(context.Background(), <-d.queue)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "approved 15", mailer.sent[0].subject)
}

func TestDispatcher_GlobalToggle(t *testing.T) {
	d := newDispatcher(Config{Enabled: false}, Templates{}, newFixture(), &recordingMailer{})
	bus := events.NewBus(nil)
	d.Subscribe(bus)

	bus.PublishAppointmentCreated(15, "pending")

	assert.Len(t, d.queue, 0)
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := newDispatcher(Config{Enabled: true, QueueSize: 1}, Templates{}, newFixture(), &recordingMailer{})

	payload := []byte(`{"appointment_id":1,"new_status":"pending"}`)
	require.NoError(t, d.handle(events.Event{Type: events.TypeAppointmentCreated, Payload: payload}))
	assert.ErrorIs(t, d.handle(events.Event{Type: events.TypeAppointmentCreated, Payload: payload}), ErrQueueFull)
}

func TestDispatcher_MissingAppointmentSkipped(t *testing.T) {
	mailer := &recordingMailer{}
	templates := Templates{RecipientCustomer: {"pending": {Subject: "x"}}}
	d := newDispatcher(Config{Enabled: true}, templates, newFixture(), mailer)

	d.process(context.Background(), job{appointmentID: 999, templateKey: "pending"})

	assert.Empty(t, mailer.sent)
}

func TestDispatcher_ResolveRecipients(t *testing.T) {
	repos := newFixture()
	d := newDispatcher(Config{
		AdminRecipients: []string{"a@example.com", " a@example.com ", "not-an-email", "b@example.com"},
		AdminEmail:      "fallback@example.com",
	}, Templates{}, repos, &recordingMailer{})

	bundle := Bundle{Appointment: repos.appointment}

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, d.resolveRecipients(RecipientAdmin, bundle))
	assert.Empty(t, d.resolveRecipients(RecipientEmployee, bundle))
	assert.Equal(t, []string{"anna@example.com"}, d.resolveRecipients(RecipientCustomer, bundle))

	d.cfg.AdminRecipients = nil
	assert.Equal(t, []string{"fallback@example.com"}, d.resolveRecipients(RecipientAdmin, bundle))
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	d := newDispatcher(Config{Enabled: true}, Templates{}, newFixture(), &recordingMailer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
