package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// TimeWindow окно работы на день недели
type TimeWindow struct {
	From types.TimeString `json:"from"`
	To   types.TimeString `json:"to"`
}

// LocationRequest запрос на создание или обновление локации
type LocationRequest struct {
	Name               string                `json:"name"`
	Address            string                `json:"address"`
	Phone              string                `json:"phone"`
	WeeklyAvailability map[string]TimeWindow `json:"weeklyAvailability"` // mon..sun; отсутствует = выходной
	MinBookingTime     int                   `json:"minBookingTime"`     // часы
}

// EmployeeRequest запрос на создание или обновление сотрудника
type EmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// ServiceRequest запрос на создание или обновление услуги
type ServiceRequest struct {
	Name           string `json:"name"`
	Duration       int    `json:"duration"`       // минуты
	SlotCapacity   int    `json:"slotCapacity"`   // 0 = без ограничения
	MinBookingTime int    `json:"minBookingTime"` // часы
}

// DayOffRequest запрос на добавление выходного
type DayOffRequest struct {
	Reason    string `json:"reason"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

// Response модели

// DayOffResponse ответ с выходным
type DayOffResponse struct {
	ID        int64     `json:"id"`
	Reason    string    `json:"reason"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// LocationResponse ответ с данными локации
type LocationResponse struct {
	ID                 int64                 `json:"id"`
	Name               string                `json:"name"`
	Address            string                `json:"address"`
	Phone              string                `json:"phone"`
	WeeklyAvailability map[string]TimeWindow `json:"weeklyAvailability"`
	MinBookingTime     int                   `json:"minBookingTime"`
	DaysOff            []DayOffResponse      `json:"daysOff,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Role      string           `json:"role"`
	DaysOff   []DayOffResponse `json:"daysOff,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Duration       int       `json:"duration"`
	SlotCapacity   int       `json:"slotCapacity"`
	MinBookingTime int       `json:"minBookingTime"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Конвертеры

// ToDomainLocation конвертирует запрос в доменную модель
func (r *LocationRequest) ToDomainLocation() *domain.Location {
	availability := make(domain.WeeklyAvailability, len(r.WeeklyAvailability))
	for day, w := range r.WeeklyAvailability {
		availability[day] = domain.TimeWindow{From: w.From, To: w.To}
	}
	return &domain.Location{
		Name:               r.Name,
		Address:            r.Address,
		Phone:              r.Phone,
		WeeklyAvailability: availability,
		MinBookingTime:     r.MinBookingTime,
	}
}

// ToDomainEmployee конвертирует запрос в доменную модель
func (r *EmployeeRequest) ToDomainEmployee() *domain.Employee {
	return &domain.Employee{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Role:      r.Role,
	}
}

// ToDomainService конвертирует запрос в доменную модель
func (r *ServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:           r.Name,
		Duration:       r.Duration,
		SlotCapacity:   r.SlotCapacity,
		MinBookingTime: r.MinBookingTime,
	}
}

// FromDomainDaysOff конвертирует выходные в response
func FromDomainDaysOff(daysOff []domain.DayOff) []DayOffResponse {
	result := make([]DayOffResponse, 0, len(daysOff))
	for _, d := range daysOff {
		result = append(result, FromDomainDayOff(d))
	}
	return result
}

// FromDomainDayOff конвертирует выходной в response
func FromDomainDayOff(d domain.DayOff) DayOffResponse {
	return DayOffResponse{
		ID:        d.ID,
		Reason:    d.Reason,
		StartDate: d.StartDate.Format(domain.DateFormat),
		EndDate:   d.EndDate.Format(domain.DateFormat),
		CreatedAt: d.CreatedAt,
	}
}

// FromDomainLocation конвертирует доменную локацию в response
func FromDomainLocation(l *domain.Location) *LocationResponse {
	availability := make(map[string]TimeWindow, len(l.WeeklyAvailability))
	for day, w := range l.WeeklyAvailability {
		availability[day] = TimeWindow{From: w.From, To: w.To}
	}

	resp := &LocationResponse{
		ID:                 l.ID,
		Name:               l.Name,
		Address:            l.Address,
		Phone:              l.Phone,
		WeeklyAvailability: availability,
		MinBookingTime:     l.MinBookingTime,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	if l.DaysOff != nil {
		resp.DaysOff = FromDomainDaysOff(l.DaysOff)
	}
	return resp
}

// FromDomainLocationList конвертирует список локаций
func FromDomainLocationList(list []*domain.Location) []*LocationResponse {
	result := make([]*LocationResponse, 0, len(list))
	for _, l := range list {
		result = append(result, FromDomainLocation(l))
	}
	return result
}

// FromDomainEmployee конвертирует доменного сотрудника в response
func FromDomainEmployee(e *domain.Employee) *EmployeeResponse {
	resp := &EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		Role:      e.Role,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.DaysOff != nil {
		resp.DaysOff = FromDomainDaysOff(e.DaysOff)
	}
	return resp
}

// FromDomainEmployeeList конвертирует список сотрудников
func FromDomainEmployeeList(list []*domain.Employee) []*EmployeeResponse {
	result := make([]*EmployeeResponse, 0, len(list))
	for _, e := range list {
		result = append(result, FromDomainEmployee(e))
	}
	return result
}

// FromDomainService конвертирует доменную услугу в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:             s.ID,
		Name:           s.Name,
		Duration:       s.Duration,
		SlotCapacity:   s.SlotCapacity,
		MinBookingTime: s.MinBookingTime,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(list []*domain.Service) []*ServiceResponse {
	result := make([]*ServiceResponse, 0, len(list))
	for _, s := range list {
		result = append(result, FromDomainService(s))
	}
	return result
}
