package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

const (
	// DefaultMaxRetries количество повторов сериализуемой транзакции при конфликте
	DefaultMaxRetries = 3

	// DefaultRetryBackoff базовая пауза между повторами
	DefaultRetryBackoff = 20 * time.Millisecond
)

// SQLSTATE коды, после которых транзакцию можно повторить
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted транзакция не прошла после всех повторов
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB или *dbmetrics.SqlDBWrapper)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	logger     Logger
	maxRetries int
	backoff    time.Duration
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, logger Logger) *TransactionManager {
	return &TransactionManager{
		db:         db,
		logger:     logger,
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultRetryBackoff,
	}
}

// WithRetries задает количество повторов и паузу
func (m *TransactionManager) WithRetries(maxRetries int, backoff time.Duration) *TransactionManager {
	m.maxRetries = maxRetries
	m.backoff = backoff
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При конфликте сериализации (40001) или дедлоке (40P01) fn выполняется заново.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.logger != nil {
				m.logger.Warn("DoSerializable: retry %d/%d after serialization failure: %v", attempt, m.maxRetries, lastErr)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок сериализации и дедлоков PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
	}
	return false
}
