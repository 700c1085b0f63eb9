package unitofwork

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-crud/internal/logger"
)

// UnitOfWork runs a function inside one database transaction.
type UnitOfWork struct {
	db *sqlx.DB
}

// New creates a UnitOfWork over the given pool
func New(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do begins a transaction, exposes it to fn through ctx and commits when fn
// returns nil. Any error or panic from fn rolls the transaction back; the
// panic is re-raised afterwards.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			rollback(tx)
			panic(rec)
		}
	}()

	if err := fn(setTxToContext(ctx, tx)); err != nil {
		rollback(tx)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Warnw("failed to roll back transaction", "error", err)
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
