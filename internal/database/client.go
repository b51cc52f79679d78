package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/reciters/internal/query"
)

// DBTX is the subset of pgx used to run queries. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Executor renders query.Query values to SQL and runs them on a DBTX.
type Executor struct {
	db DBTX
}

// NewExecutor returns an Executor over db.
func NewExecutor(db DBTX) *Executor {
	return &Executor{db: db}
}

// Execute implements query.Client.
//
// A requested count is a separate `count(*)` statement so it ignores
// paging. Head-only queries skip the row statement entirely.
func (e *Executor) Execute(ctx context.Context, q *query.Query) (*query.Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if q.Kind == query.KindInsert {
		return e.insert(ctx, q)
	}

	resp := &query.Response{}

	if q.CountRows {
		sql, args := buildCount(q)
		var n int64
		if err := e.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", q.Table, err)
		}
		resp.Count = &n
	}

	if q.HeadOnly {
		return resp, nil
	}

	sql, args := buildSelect(q)
	rows, err := e.collect(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", q.Table, err)
	}
	resp.Rows = rows

	return resp, nil
}

func (e *Executor) insert(ctx context.Context, q *query.Query) (*query.Response, error) {
	sql, args := buildInsert(q)

	if !q.ReturnRow {
		if _, err := e.db.Exec(ctx, sql, args...); err != nil {
			return nil, fmt.Errorf("inserting into %s: %w", q.Table, err)
		}
		return &query.Response{}, nil
	}

	rows, err := e.collect(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", q.Table, err)
	}
	return &query.Response{Rows: rows}, nil
}

func (e *Executor) collect(ctx context.Context, sql string, args []any) ([]query.Row, error) {
	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	out := make([]query.Row, 0, len(maps))
	for _, m := range maps {
		out = append(out, query.Row(m))
	}
	return out, nil
}

// Execute implements query.Client on the connection pool.
func (db *Database) Execute(ctx context.Context, q *query.Query) (*query.Response, error) {
	return db.exec.Execute(ctx, q)
}
