package notifications

import "errors"

var (
	// ErrQueueFull возвращается, когда очередь уведомлений переполнена
	ErrQueueFull = errors.New("notifications: queue is full")

	// ErrLoadTemplates возвращается при ошибке чтения файла шаблонов
	ErrLoadTemplates = errors.New("notifications: failed to load templates")
)
