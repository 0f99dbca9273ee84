package create_appointment

import "errors"

// Категории отказа
var (
	// ErrInvalidInput отсутствующие или некорректные поля
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrReferenceNotFound услуга, сотрудник или локация не найдены
	ErrReferenceNotFound = errors.New("create_appointment: referenced entity not found")

	// ErrSlotNotAvailable выбранный слот больше не доступен
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrRateLimited превышено число попыток записи
	ErrRateLimited = errors.New("create_appointment: too many attempts")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// Коды отказа в ответе API
const (
	CodeInvalidInput    = "invalid_input"
	CodeNotFound        = "not_found"
	CodeSlotUnavailable = "slot_unavailable"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal"
)

// Сообщения отказа для клиента
const (
	MsgRateLimited     = "Too many attempts. Please try again later."
	MsgMissingFields   = "Missing required fields: "
	MsgInvalidName     = "Invalid name."
	MsgInvalidEmail    = "Invalid email address."
	MsgInvalidPhone    = "Invalid phone number."
	MsgInvalidDateTime = "Invalid date/time format."
	MsgPastDateTime    = "Date/time is in the past."
	MsgInvalidService  = "Invalid service."
	MsgInvalidEmployee = "Invalid employee."
	MsgInvalidLocation = "Invalid location."
	MsgSlotUnavailable = "Selected time slot is no longer available."
	MsgBookingFailed   = "Failed to book appointment."
)

// ValidationError отказ в записи с полем и сообщением для клиента.
// errors.Is по Kind определяет категорию.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Kind.Error() + ": " + e.Message
	}
	return e.Kind.Error() + ": " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Code возвращает код категории для ответа API
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrInvalidInput:
		return CodeInvalidInput
	case ErrReferenceNotFound:
		return CodeNotFound
	case ErrSlotNotAvailable:
		return CodeSlotUnavailable
	case ErrRateLimited:
		return CodeRateLimited
	default:
		return CodeInternal
	}
}

func reject(kind error, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}
