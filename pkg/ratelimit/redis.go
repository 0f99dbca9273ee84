package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter счетчик попыток в redis, общий для всех инстансов сервиса
type RedisLimiter struct {
	client redis.Cmdable
	cfg    Config
}

// NewRedisLimiter создает limiter поверх redis клиента
func NewRedisLimiter(client redis.Cmdable, cfg Config) *RedisLimiter {
	return &RedisLimiter{client: client, cfg: cfg.withDefaults()}
}

// Allow увеличивает счетчик и продлевает окно, затем сравнивает результат с лимитом.
// INCR выполняется до проверки, поэтому параллельные попытки не превышают Max.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := hashKey(l.cfg.Prefix, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("%w: increment counter: %w", ErrBackend, err)
	}

	return incr.Val() <= int64(l.cfg.Max), nil
}
