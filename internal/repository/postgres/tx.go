package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventadmission/internal/domain"
)

// Postgres error codes translated into domain errors.
const (
	codeInvalidText      = "22P02"
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03"
)

type txKey struct{}

// querier is the part of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type transactor struct {
	DB          *sql.DB
	LockTimeout time.Duration
}

// NewTransactor returns a domain.Transactor backed by db. A positive lockTimeout
// bounds how long statements in the transaction wait for row locks.
func NewTransactor(db *sql.DB, lockTimeout time.Duration) domain.Transactor {
	return &transactor{DB: db, LockTimeout: lockTimeout}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if t.LockTimeout > 0 {
		// SET does not take bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", t.LockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", mapError(err))
	}
	return nil
}

// mapError translates driver errors the services act on into domain errors.
func mapError(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return err
	}
	switch perr.Code {
	case codeLockNotAvailable:
		return fmt.Errorf("%w: %s", domain.ErrBusy, perr.Message)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, perr.Message)
	case codeInvalidText:
		// A malformed id cannot match any row.
		return fmt.Errorf("%w: %s", domain.ErrNotFound, perr.Message)
	}
	return err
}
