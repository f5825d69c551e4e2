package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/koustreak/sqlconnect/internal/connector"
	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/errs"
	"github.com/koustreak/sqlconnect/internal/logger"
)

// Driver is a PostgreSQL connection factory backed by pgxpool.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	log            *logger.Logger
}

var _ database.DB = (*Driver)(nil)

// New builds a pool from cfg and pings it under the login timeout.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	poolCfg, err := Configure(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := &Driver{log: logger.FromContext(ctx).With().Str("driver", string(database.DriverPostgres)).Logger()}
	if props, ok := connector.BuildPoolProperties(cfg.Options).Get(); ok {
		d.applyPoolProperties(props)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create connection pool", err)
	}
	d.pool = pool

	var loginTimeout time.Duration
	if ms, ok := connector.BuildConnectorOptions(cfg.Options).LoginTimeout.Get(); ok {
		loginTimeout = database.Millis(ms)
	}
	pingCtx, cancel := database.WithTimeout(ctx, loginTimeout)
	defer cancel()

	if err := d.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	d.log.With().Int("maxConns", int(poolCfg.MaxConns)).Logger().Debug("postgres pool ready")
	return d, nil
}

// Configure parses the DSN and applies pool sizing and connection
// properties without opening any connection.
func Configure(ctx context.Context, cfg *database.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid DSN", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	co := connector.BuildConnectorOptions(cfg.Options)
	if props, ok := co.Properties.Get(); ok {
		log := logger.FromContext(ctx).With().
			Str("driver", string(database.DriverPostgres)).
			Object("properties", props).
			Logger()
		if err := applyConnectionProperties(poolCfg.ConnConfig, props, log); err != nil {
			return nil, err
		}
		log.Debug("connection properties applied")
	}

	return poolCfg, nil
}

// Ping verifies the database is reachable by acquiring and releasing a connection.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close drains the connection pool.
func (d *Driver) Close() {
	d.pool.Close()
}

// Acquire takes a connection from the pool, waiting at most the pool
// connect timeout when one was configured.
func (d *Driver) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	ctx, cancel := database.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, mapError(err, "acquire failed")
	}
	return conn, nil
}

// SQLDB exposes the pool through database/sql. Connections obtained from
// it can be unwrapped with WithVendorConn.
func (d *Driver) SQLDB() *sql.DB {
	return stdlib.OpenDBFromPool(d.pool)
}

// --- error mapping ---

// mapError translates pgx / pgconn native errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.ErrKindQueryFailed
		// Class 08 is connection exceptions, 28 is invalid authorization.
		if len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "28") {
			kind = errs.ErrKindConnectionFailed
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	// connection-level errors (TLS, network, dial timeout)
	if pgconn.Timeout(err) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
