package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	SQLDB() *sql.DB
}

// Querier is the subset shared by DB and Tx, so repositories can run the
// same statements inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

// ErrNoRows is returned by Row.Scan when the query matched nothing,
// regardless of the driver underneath.
var ErrNoRows = errors.New("no rows in result set")

// WithTx runs fn in a transaction. fn's error rolls the transaction back and
// is returned unchanged.
func WithTx(ctx context.Context, db DB, fn func(tx Tx) error) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
