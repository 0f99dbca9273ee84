package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Типы событий записи
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// Event доменное событие
type Event struct {
	ID        string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// AppointmentPayload данные событий записи.
// Для appointment.created OldStatus пустой, NewStatus = статус новой записи.
type AppointmentPayload struct {
	AppointmentID int64  `json:"appointment_id"`
	OldStatus     string `json:"old_status,omitempty"`
	NewStatus     string `json:"new_status"`
}

// Handler обработчик события
type Handler func(event Event) error

// Logger интерфейс для логирования ошибок обработчиков
type Logger interface {
	Error(format string, v ...interface{})
}

// Bus внутрипроцессная шина событий
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
	logger      Logger
}

// NewBus создает пустую шину
func NewBus(logger Logger) *Bus {
	return &Bus{
		subscribers: make(map[string][]Handler),
		logger:      logger,
	}
}

// Subscribe регистрирует обработчик для типа события
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish синхронно вызывает обработчики типа события.
// Ошибка обработчика логируется и не прерывает остальных.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil && b.logger != nil {
			b.logger.Error("events: handler for %s failed: %v", event.Type, err)
		}
	}
}

// PublishAppointmentCreated публикует событие создания записи
func (b *Bus) PublishAppointmentCreated(appointmentID int64, status string) {
	b.publishAppointment(TypeAppointmentCreated, AppointmentPayload{
		AppointmentID: appointmentID,
		NewStatus:     status,
	})
}

// PublishStatusChanged публикует событие смены статуса записи
func (b *Bus) PublishStatusChanged(appointmentID int64, oldStatus, newStatus string) {
	b.publishAppointment(TypeAppointmentStatusChanged, AppointmentPayload{
		AppointmentID: appointmentID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	})
}

func (b *Bus) publishAppointment(eventType string, payload AppointmentPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("events: failed to encode %s payload: %v", eventType, err)
		}
		return
	}
	b.Publish(Event{Type: eventType, Payload: data})
}

// DecodeAppointment разбирает данные события записи
func DecodeAppointment(event Event) (AppointmentPayload, error) {
	var payload AppointmentPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return AppointmentPayload{}, fmt.Errorf("events: decode %s payload: %w", event.Type, err)
	}
	return payload, nil
}
