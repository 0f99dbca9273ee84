package notifications

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/events"
)

// DefaultQueueSize размер очереди уведомлений по умолчанию
const DefaultQueueSize = 100

// Результаты отправки для метрик
const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

// Config настройки рассылки
type Config struct {
	Enabled         bool
	AdminRecipients []string
	// AdminEmail используется, когда список AdminRecipients пуст
	AdminEmail string
	Site       Site
	QueueSize  int
}

type job struct {
	appointmentID int64
	templateKey   string
}

// Dispatcher рассылает письма по событиям записи.
// Обработчики событий только ставят задачу в очередь, письма отправляет Run.
type Dispatcher struct {
	cfg          Config
	templates    Templates
	appointments AppointmentRepository
	services     ServiceRepository
	employees    EmployeeRepository
	locations    LocationRepository
	mailer       Mailer
	location     *time.Location
	logger       Logger
	metrics      Metrics
	queue        chan job
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(
	cfg Config,
	templates Templates,
	appointments AppointmentRepository,
	services ServiceRepository,
	employees EmployeeRepository,
	locations LocationRepository,
	mailer Mailer,
	location *time.Location,
	logger Logger,
	metrics Metrics,
) *Dispatcher {
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	if location == nil {
		location = time.UTC
	}

	return &Dispatcher{
		cfg:          cfg,
		templates:    templates,
		appointments: appointments,
		services:     services,
		employees:    employees,
		locations:    locations,
		mailer:       mailer,
		location:     location,
		logger:       logger,
		metrics:      metrics,
		queue:        make(chan job, size),
	}
}

// Subscribe подписывает диспетчер на события записей
func (d *Dispatcher) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.TypeAppointmentCreated, d.handle)
	bus.Subscribe(events.TypeAppointmentStatusChanged, d.handle)
}

func (d *Dispatcher) handle(event events.Event) error {
	if !d.cfg.Enabled {
		return nil
	}

	payload, err := events.DecodeAppointment(event)
	if err != nil {
		return err
	}

	// created: шаблон по текущему статусу; status_changed: по новому
	key := payload.NewStatus
	if key == "" {
		key = "pending"
	}

	select {
	case d.queue <- job{appointmentID: payload.AppointmentID, templateKey: key}:
		return nil
	default:
		d.countResult(resultDropped)
		return ErrQueueFull
	}
}

// Run обрабатывает очередь до отмены контекста
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Notification dispatcher stopped")
			return nil
		case j := <-d.queue:
			d.process(ctx, j)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, j job) {
	bundle, ok := d.loadBundle(ctx, j.appointmentID)
	if !ok {
		return
	}

	tags := MergeTags(bundle, d.cfg.Site, d.location)

	for _, recipient := range recipients {
		tmpl, ok := d.templates.Lookup(recipient, j.templateKey)
		if !ok || !tmpl.IsEnabled() {
			continue
		}

		subject := Render(tmpl.Subject, tags)
		body := Render(tmpl.Body, tags)
		if strings.TrimSpace(subject) == "" && strings.TrimSpace(body) == "" {
			continue
		}

		for _, to := range d.resolveRecipients(recipient, bundle) {
			if err := d.mailer.Send(ctx, to, subject, body); err != nil {
				d.logger.Error("Notification: failed to send %s/%s for appointment %d to %s: %v",
					recipient, j.templateKey, j.appointmentID, to, err)
				d.countResult(resultFailed)
				continue
			}
			d.countResult(resultSent)
		}
	}
}

func (d *Dispatcher) loadBundle(ctx context.Context, appointmentID int64) (Bundle, bool) {
	appointment, err := d.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		d.logger.Warn("Notification: appointment %d not loaded: %v", appointmentID, err)
		return Bundle{}, false
	}

	bundle := Bundle{Appointment: appointment}

	// связанные сущности могут быть удалены, теги для них останутся пустыми
	if s, err := d.services.GetByID(ctx, appointment.ServiceID); err == nil {
		bundle.Service = s
	} else {
		d.logger.Warn("Notification: service %d not loaded: %v", appointment.ServiceID, err)
	}
	if e, err := d.employees.GetByID(ctx, appointment.EmployeeID); err == nil {
		bundle.Employee = e
	} else {
		d.logger.Warn("Notification: employee %d not loaded: %v", appointment.EmployeeID, err)
	}
	if l, err := d.locations.GetByID(ctx, appointment.LocationID); err == nil {
		bundle.Location = l
	} else {
		d.logger.Warn("Notification: location %d not loaded: %v", appointment.LocationID, err)
	}

	return bundle, true
}

// resolveRecipients возвращает валидные уникальные адреса для получателя
func (d *Dispatcher) resolveRecipients(recipient string, b Bundle) []string {
	var candidates []string

	switch recipient {
	case RecipientCustomer:
		candidates = append(candidates, b.Appointment.CustomerEmail)
	case RecipientEmployee:
		if b.Employee != nil {
			candidates = append(candidates, b.Employee.Email)
		}
	case RecipientAdmin:
		candidates = append(candidates, d.cfg.AdminRecipients...)
		if len(candidates) == 0 && d.cfg.AdminEmail != "" {
			candidates = append(candidates, d.cfg.AdminEmail)
		}
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		if _, err := mail.ParseAddress(c); err != nil {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	return out
}

func (d *Dispatcher) countResult(result string) {
	if d.metrics != nil {
		d.metrics.NotificationSent(result)
	}
}
