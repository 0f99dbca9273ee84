package clock

import (
	"fmt"
	"time"
)

// Clock источник текущего времени в часовом поясе оператора
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Real системные часы, приведенные к заданному часовому поясу
type Real struct {
	loc *time.Location
}

// New создает часы для IANA часового пояса (пустая строка = UTC)
func New(timezone string) (*Real, error) {
	if timezone == "" {
		return &Real{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: unknown timezone %q: %w", timezone, err)
	}
	return &Real{loc: loc}, nil
}

// Now возвращает текущее время в часовом поясе оператора
func (c *Real) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает часовой пояс оператора
func (c *Real) Location() *time.Location {
	return c.loc
}

// Fixed часы с фиксированным временем (для тестов)
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (c *Fixed) Now() time.Time {
	return c.T
}

// Location возвращает часовой пояс зафиксированного времени
func (c *Fixed) Location() *time.Location {
	return c.T.Location()
}
