package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/errs"
)

// Query executes a query returning multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &mysqlRows{rows: rows}, nil
}

// QueryRow executes a query returning a single row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &mysqlRow{row: d.db.QueryRowContext(ctx, query, args...)}
}

// --- mysqlRows wraps *sql.Rows ---

type mysqlRows struct{ rows *sql.Rows }

func (r *mysqlRows) Next() bool             { return r.rows.Next() }
func (r *mysqlRows) Scan(dest ...any) error { return scanError(r.rows.Scan(dest...), "scan failed") }
func (r *mysqlRows) Close()                 { _ = r.rows.Close() }

func (r *mysqlRows) Columns() ([]string, error) {
	cols, err := r.rows.Columns()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to read column names", err)
	}
	return cols, nil
}

func (r *mysqlRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, "row iteration failed")
	}
	return nil
}

// --- mysqlRow wraps *sql.Row ---

type mysqlRow struct{ row *sql.Row }

func (r *mysqlRow) Scan(dest ...any) error { return scanError(r.row.Scan(dest...), "scan failed") }

// scanError classifies errors surfaced by Scan. QueryRow defers the query
// error until Scan, so server and context errors go through mapError; what
// remains is a conversion problem.
func scanError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &mysqlErr) {
		return mapError(err, msg)
	}
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
