package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL время жизни записи кэша по умолчанию
const DefaultTTL = 5 * time.Minute

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache JSON кэш поверх redis.
// Нулевой клиент или ttl <= 0 выключают кэш: Get всегда промахивается, Set и Delete ничего не делают.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	logger Logger
}

// New создает кэш; client может быть nil
func New(client redis.Cmdable, ttl time.Duration, prefix string, logger Logger) *Cache {
	return &Cache{client: client, ttl: ttl, prefix: prefix, logger: logger}
}

// Disabled возвращает выключенный кэш
func Disabled() *Cache {
	return &Cache{}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get читает значение по ключу в out; возвращает true при попадании
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		c.warn("cache: decode %s: %v", key, err)
		return false
	}
	return true
}

// Set сохраняет значение по ключу
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		c.warn("cache: encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.warn("cache: set %s: %v", key, err)
	}
}

// Delete инвалидирует ключи
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.warn("cache: delete %v: %v", keys, err)
	}
}

// GetOrLoad читает значение из кэша, при промахе вызывает load и сохраняет результат
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	val, err := load(ctx)
	if err != nil {
		return val, err
	}
	c.Set(ctx, key, val)
	return val, nil
}

func (c *Cache) warn(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(format, v...)
	}
}
