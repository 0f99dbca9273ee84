// Package ratelimit ограничивает количество попыток по ключу (адрес клиента)
// в скользящем окне. Окно продлевается при каждой принятой попытке.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// Значения по умолчанию: 5 попыток за 5 минут
const (
	DefaultMax    = 5
	DefaultWindow = 5 * time.Minute
)

// ErrBackend ошибка хранилища счетчиков
var ErrBackend = errors.New("ratelimit: backend error")

// Limiter проверяет и учитывает попытку по ключу
type Limiter interface {
	// Allow возвращает false, если лимит попыток по ключу исчерпан.
	// Принятая попытка увеличивает счетчик.
	Allow(ctx context.Context, key string) (bool, error)
}

// Config параметры ограничения
type Config struct {
	Max    int
	Window time.Duration
	Prefix string
}

func (c Config) withDefaults() Config {
	if c.Max <= 0 {
		c.Max = DefaultMax
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Prefix == "" {
		c.Prefix = "ratelimit:"
	}
	return c
}

// hashKey не хранит адрес клиента в открытом виде
func hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(value)))
	return prefix + hex.EncodeToString(hash[:8])
}

// ClientIP извлекает адрес клиента из запроса.
// При trustProxy берется первый адрес из X-Forwarded-For, затем X-Real-IP.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
