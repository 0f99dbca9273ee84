package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Бизнес-метрики
	AppointmentsCreated  *prometheus.CounterVec
	SubmissionRejections *prometheus.CounterVec
	NotificationsSent    *prometheus.CounterVec

	serviceName string
}

// New регистрирует метрики в глобальном prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном registry
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		AppointmentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Total number of created appointments by initial status",
		}, []string{"service", "status"}),

		SubmissionRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_submission_rejections_total",
			Help: "Total number of rejected booking submissions by reason",
		}, []string{"service", "reason"}),

		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notification deliveries by result",
		}, []string{"service", "result"}),
	}
}

// ServiceName возвращает имя сервиса, используемое в метках
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// AppointmentCreated увеличивает счетчик созданных записей
func (m *Metrics) AppointmentCreated(status string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName, status).Inc()
}

// SubmissionRejected увеличивает счетчик отклоненных заявок
func (m *Metrics) SubmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.SubmissionRejections.WithLabelValues(m.serviceName, reason).Inc()
}

// NotificationSent увеличивает счетчик отправок уведомлений
func (m *Metrics) NotificationSent(result string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(m.serviceName, result).Inc()
}
