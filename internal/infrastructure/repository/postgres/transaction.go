package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/platform/resilience"
)

type txKey struct{}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Transactor struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

// NewTransactor builds a transactor. breaker may be nil; when set, failures to
// begin or commit count against it and an open breaker fails transactions
// fast with resilience.ErrCircuitOpen.
func NewTransactor(db *sqlx.DB, breaker *resilience.CircuitBreaker) *Transactor {
	return &Transactor{db: db, breaker: breaker}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// A ctx that already carries a transaction reuses it.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	if t.breaker == nil {
		return t.run(ctx, fn)
	}
	return t.breaker.Execute(func() error { return t.run(ctx, fn) }, isConnectionFailure)
}

func (t *Transactor) run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return &txError{op: "begin tx", err: err}
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &txError{op: "commit tx", err: err}
	}
	return nil
}

// txError marks failures of the transaction itself, as opposed to errors
// returned by the work inside it.
type txError struct {
	op  string
	err error
}

func (e *txError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }
func (e *txError) Unwrap() error { return e.err }

func isConnectionFailure(err error) bool {
	var txErr *txError
	return errors.As(err, &txErr)
}

func executor(ctx context.Context, db *sqlx.DB) queryer {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
