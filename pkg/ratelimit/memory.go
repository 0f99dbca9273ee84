package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Clock источник времени (подменяется в тестах)
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type entry struct {
	count     int
	expiresAt time.Time
}

// MemoryLimiter счетчик попыток в памяти процесса (одиночный инстанс, redis выключен)
type MemoryLimiter struct {
	cfg     Config
	clock   Clock
	mu      sync.Mutex
	entries map[string]*entry
	calls   int
}

// NewMemoryLimiter создает limiter в памяти; clock может быть nil
func NewMemoryLimiter(cfg Config, clock Clock) *MemoryLimiter {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryLimiter{
		cfg:     cfg.withDefaults(),
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Allow проверяет счетчик и, если лимит не исчерпан, увеличивает его и продлевает окно
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock.Now()
	k := hashKey(l.cfg.Prefix, key)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%256 == 0 {
		l.sweep(now)
	}

	e := l.entries[k]
	if e == nil || !now.Before(e.expiresAt) {
		e = &entry{}
		l.entries[k] = e
	}

	if e.count >= l.cfg.Max {
		return false, nil
	}

	e.count++
	e.expiresAt = now.Add(l.cfg.Window)
	return true, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for k, e := range l.entries {
		if !now.Before(e.expiresAt) {
			delete(l.entries, k)
		}
	}
}
