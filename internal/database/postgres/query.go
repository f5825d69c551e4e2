package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/errs"
)

// Query executes a query returning multiple rows.
func (d *Driver) Query(ctx context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &pgRows{rows: rows}, nil
}

// QueryRow executes a query returning a single row.
func (d *Driver) QueryRow(ctx context.Context, sql string, args ...any) database.Row {
	return &pgRow{row: d.pool.QueryRow(ctx, sql, args...)}
}

// --- pgRows wraps pgx.Rows ---

type pgRows struct{ rows pgx.Rows }

func (r *pgRows) Next() bool             { return r.rows.Next() }
func (r *pgRows) Scan(dest ...any) error { return scanError(r.rows.Scan(dest...), "scan failed") }
func (r *pgRows) Close()                 { r.rows.Close() }

func (r *pgRows) Columns() ([]string, error) {
	fields := r.rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols, nil
}

func (r *pgRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, "row iteration failed")
	}
	return nil
}

// --- pgRow wraps pgx.Row ---

type pgRow struct{ row pgx.Row }

func (r *pgRow) Scan(dest ...any) error { return scanError(r.row.Scan(dest...), "scan failed") }

// scanError classifies errors surfaced by Scan. QueryRow defers the query
// error until Scan, so server and context errors go through mapError; what
// remains is a decoding problem.
func scanError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &pgErr) ||
		pgconn.Timeout(err) {
		return mapError(err, msg)
	}
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
