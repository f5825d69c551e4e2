package database

import (
	"context"
	"math"
	"time"
)

// DB is the contract shared by the driver factories.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the connection pool.
	Close()

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	// Errors are deferred until Scan.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
// Scan fails with ErrKindNotFound when the query matched nothing.
type Row interface {
	Scan(dest ...any) error
}

const maxDurationMillis = math.MaxInt64 / int64(time.Millisecond)

// Millis converts a millisecond property value to a duration.
// Zero means "no limit" for every driver in this module. Values past the
// time.Duration range saturate at the largest whole millisecond.
func Millis(ms int64) time.Duration {
	if ms > maxDurationMillis {
		ms = maxDurationMillis
	}
	return time.Duration(ms) * time.Millisecond
}

// Tighter returns the smaller of two limits, ignoring those that are not
// positive. Zero means neither limit is set.
func Tighter(a, b time.Duration) time.Duration {
	switch {
	case a <= 0:
		return max(b, 0)
	case b <= 0:
		return a
	default:
		return min(a, b)
	}
}

// WithTimeout bounds ctx by d when d is positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
