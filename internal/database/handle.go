// Package database owns the single live PostgreSQL connection of a session.
//
// Every statement is sent with the simple protocol, so result columns come
// back in the server's text format and are handed to callers as strings.
// Arguments are still bound as $n placeholders and escaped by the driver.
package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/ticketmaster/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor is the statement surface shared by the Handle and by a
// transaction opened through WithTx.
type Executor interface {
	// Exec runs an INSERT, UPDATE or DELETE and returns the affected row count.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	// Query returns every row of a SELECT as text.
	Query(ctx context.Context, sql string, args ...any) (*Result, error)
	// Exists reports whether the query yields at least one row. It is not a count.
	Exists(ctx context.Context, sql string, args ...any) (bool, error)
}

// pgxConn is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Handle struct {
	runner
	pool   *pgxpool.Pool
	target string
}

// Open connects to the configured database and verifies the connection.
// The pool is capped at one connection: a session has exactly one.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Handle, error) {
	target := fmt.Sprintf("postgresql://%s:%d/%s", cfg.Host, cfg.Port, cfg.Name)

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, &ConnectionError{Target: target, Err: fmt.Errorf("parse config: %w", err)}
	}
	poolConfig.MaxConns = 1
	poolConfig.MinConns = 1
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout()
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, &ConnectionError{Target: target, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, &ConnectionError{Target: target, Err: err}
	}

	return &Handle{runner: runner{conn: pool}, pool: pool, target: target}, nil
}

// Target is the connection URL shown to the operator.
func (h *Handle) Target() string {
	return h.target
}

func (h *Handle) Close() {
	if h.pool != nil {
		h.pool.Close()
	}
}

// WithTx runs fn inside one transaction. Any error from fn rolls back
// everything fn executed.
func (h *Handle) WithTx(ctx context.Context, fn func(Executor) error) error {
	tx, err := h.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return &StatementError{SQL: "BEGIN", Err: err}
	}
	defer tx.Rollback(ctx)

	if err := fn(runner{conn: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &StatementError{SQL: "COMMIT", Err: err}
	}
	return nil
}

// LastSequenceValue returns the current value of the named sequence in this
// session, or -1 when the server returns no row.
func (h *Handle) LastSequenceValue(ctx context.Context, sequence string) (int64, error) {
	return h.runner.lastSequenceValue(ctx, sequence)
}

type runner struct {
	conn pgxConn
}

func (r runner) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, &StatementError{SQL: sql, Err: err}
	}
	return tag.RowsAffected(), nil
}

func (r runner) Query(ctx context.Context, sql string, args ...any) (*Result, error) {
	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, &StatementError{SQL: sql, Err: err}
	}
	defer rows.Close()

	res, err := readResult(rows)
	if err != nil {
		return nil, &StatementError{SQL: sql, Err: err}
	}
	return res, nil
}

func (r runner) Exists(ctx context.Context, sql string, args ...any) (bool, error) {
	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return false, &StatementError{SQL: sql, Err: err}
	}
	found := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, &StatementError{SQL: sql, Err: err}
	}
	return found, nil
}

func (r runner) lastSequenceValue(ctx context.Context, sequence string) (int64, error) {
	const q = `SELECT currval($1)`
	res, err := r.Query(ctx, q, sequence)
	if err != nil {
		return -1, err
	}
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return -1, nil
	}
	v, err := strconv.ParseInt(res.Rows[0][0], 10, 64)
	if err != nil {
		return -1, &StatementError{SQL: q, Err: fmt.Errorf("parse sequence value %q: %w", res.Rows[0][0], err)}
	}
	return v, nil
}

var _ Executor = (*Handle)(nil)
var _ Executor = runner{}

// Transactor is what repositories depend on: plain statements plus a way to
// group several of them into one transaction.
type Transactor interface {
	Executor
	WithTx(ctx context.Context, fn func(Executor) error) error
}

var _ Transactor = (*Handle)(nil)
