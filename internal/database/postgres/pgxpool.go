package postgres

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"pitchmatch/internal/config"
	"pitchmatch/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const defaultPingTimeout = 5 * time.Second

var errNilDB = errors.New("postgres: pool not connected")

// Pool implements database.DB on a pgx connection pool. The *sql.DB view
// shares the same pool and is only used by the migration runner.
type Pool struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// DSN renders cfg as a postgres:// URL with credentials escaped.
func DSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(strings.TrimSpace(cfg.DBUser), cfg.DBPassword),
		Host:   net.JoinHostPort(strings.TrimSpace(cfg.DBHost), strings.TrimSpace(cfg.DBPort)),
		Path:   "/" + strings.TrimSpace(cfg.DBName),
	}
	q := url.Values{}
	q.Set("sslmode", cmp.Or(strings.TrimSpace(cfg.DBSSLMode), "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// Connect opens the pool, applies the tuning knobs that are set, and pings
// the server before returning.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	tune(pcfg, cfg)

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping %s: %w", pcfg.ConnConfig.Host, err)
	}

	return &Pool{pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func tune(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	pcfg.ConnConfig.ConnectTimeout = cmp.Or(cfg.ConnectTimeout, pcfg.ConnConfig.ConnectTimeout)
	pcfg.MaxConns = cmp.Or(cfg.PoolMaxConns, pcfg.MaxConns)
	pcfg.MinConns = cmp.Or(cfg.PoolMinConns, pcfg.MinConns)
	pcfg.MaxConnLifetime = cmp.Or(cfg.PoolMaxConnLifetime, pcfg.MaxConnLifetime)
	pcfg.MaxConnIdleTime = cmp.Or(cfg.PoolMaxConnIdleTime, pcfg.MaxConnIdleTime)
	pcfg.HealthCheckPeriod = cmp.Or(cfg.PoolHealthCheckPeriod, pcfg.HealthCheckPeriod)
}

func (p *Pool) conn() querier {
	if p == nil || p.pool == nil {
		return querier{}
	}
	return querier{q: p.pool}
}

func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errNilDB
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.pool == nil {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	p.pool.Close()
	return err
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return p.conn().Exec(ctx, query, args...)
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return p.conn().Query(ctx, query, args...)
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return p.conn().QueryRow(ctx, query, args...)
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if p == nil || p.pool == nil {
		return nil, errNilDB
	}
	t, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return txn{querier: querier{q: t}, tx: t}, nil
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier adapts a pgxQuerier to database.Querier. The zero value reports
// errNilDB.
type querier struct {
	q pgxQuerier
}

func (q querier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if q.q == nil {
		return 0, errNilDB
	}
	tag, err := q.q.Exec(ctx, query, args...)
	return tag.RowsAffected(), err
}

func (q querier) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if q.q == nil {
		return nil, errNilDB
	}
	r, err := q.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (q querier) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if q.q == nil {
		return failedRow{errNilDB}
	}
	return row{q.q.QueryRow(ctx, query, args...)}
}

type txn struct {
	querier
	tx pgx.Tx
}

func (t txn) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

// Rollback after Commit is a no-op so callers can always defer it.
func (t txn) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// row maps pgx.ErrNoRows onto database.ErrNoRows.
type row struct{ pgx.Row }

func (r row) Scan(dest ...any) error {
	if err := r.Row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.ErrNoRows
		}
		return err
	}
	return nil
}

type failedRow struct{ err error }

func (r failedRow) Scan(...any) error { return r.err }
