package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &stubDB{}
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx := &stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM locations"))
	assert.Equal(t, "insert", operation("  INSERT INTO appointments"))
	assert.Equal(t, "unknown", operation(""))
}

func TestSqlDBWrapper_ImplementsBeginner(t *testing.T) {
	var _ interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
	} = &SqlDBWrapper{}
	var _ interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
	} = &DB{}
}
