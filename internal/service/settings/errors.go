package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
