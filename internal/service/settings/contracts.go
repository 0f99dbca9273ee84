package settings

import (
	"context"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
