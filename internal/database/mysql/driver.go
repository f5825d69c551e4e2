package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/koustreak/sqlconnect/internal/connector"
	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/errs"
	"github.com/koustreak/sqlconnect/internal/logger"
	"github.com/koustreak/sqlconnect/internal/options"
	"github.com/koustreak/sqlconnect/internal/tlsconf"
)

// Driver is a MySQL connection factory backed by database/sql.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db             *sql.DB
	acquireTimeout time.Duration
}

var _ database.DB = (*Driver)(nil)

// New opens a MySQL pool from cfg and pings it, bounded by the login
// timeout and the pool connect timeout.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	mcfg, err := Configure(ctx, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid mysql config", err)
	}
	db := sql.OpenDB(conn)

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &Driver{db: db}
	if props, ok := connector.BuildPoolProperties(cfg.Options).Get(); ok {
		d.applyPoolProperties(props)
	}

	pingCtx, cancel := database.WithTimeout(ctx, pingTimeout(cfg.Options))
	defer cancel()

	log := logger.FromContext(ctx).With().Str("driver", string(database.DriverMySQL)).Logger()
	if err := d.Ping(pingCtx); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.With().Err(cerr).Logger().Warn("closing pool after failed ping")
		}
		return nil, err
	}

	log.With().Int("maxConns", int(cfg.MaxConns)).Logger().Debug("mysql pool ready")
	return d, nil
}

// pingTimeout bounds the first ping by the login timeout and the pool
// connect timeout, whichever is tighter.
func pingTimeout(opts options.ClientOptions) time.Duration {
	var login, acquire time.Duration
	if ms, ok := connector.BuildConnectorOptions(opts).LoginTimeout.Get(); ok {
		login = database.Millis(ms)
	}
	if props, ok := connector.BuildPoolProperties(opts).Get(); ok {
		if ms, ok := props.Int64(connector.PoolKeyConnectTimeout); ok {
			acquire = database.Millis(ms)
		}
	}
	return database.Tighter(login, acquire)
}

// Configure parses the DSN and applies the connection properties without
// opening any connection.
func Configure(ctx context.Context, cfg *database.Config) (*mysql.Config, error) {
	mcfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid DSN", err)
	}

	log := logger.FromContext(ctx).With().Str("driver", string(database.DriverMySQL)).Logger()
	mcfg.Logger = driverLogger{log: log}

	co := connector.BuildConnectorOptions(cfg.Options)
	if props, ok := co.Properties.Get(); ok {
		if err := applyConnectionProperties(mcfg, props); err != nil {
			return nil, err
		}
		log.With().Object("properties", props).Logger().Debug("connection properties applied")
	}
	if props, ok := connector.BuildPoolProperties(cfg.Options).Get(); ok {
		if autocommit, ok := props.Bool(connector.PoolKeyAutocommit); ok {
			setAutocommit(mcfg, autocommit)
		}
	}

	return mcfg, nil
}

// applyConnectionProperties maps the connector keys onto a driver config.
func applyConnectionProperties(mcfg *mysql.Config, props *connector.Properties) error {
	if ms, ok := props.Int64(connector.KeyConnectTimeout); ok {
		mcfg.Timeout = database.Millis(ms)
	}
	if ms, ok := props.Int64(connector.KeyReadTimeout); ok {
		mcfg.ReadTimeout = database.Millis(ms)
	}
	if autocommit, ok := props.Bool(connector.KeyAutocommit); ok {
		setAutocommit(mcfg, autocommit)
	}

	tlsCfg, err := tlsconf.Build(props)
	if err != nil {
		return err
	}
	if tlsCfg != nil {
		if tlsCfg.ServerName == "" {
			if host, _, err := net.SplitHostPort(mcfg.Addr); err == nil {
				tlsCfg.ServerName = host
			}
		}
		mcfg.TLS = tlsCfg
		mcfg.AllowFallbackToPlaintext = false
	}
	return nil
}

func setAutocommit(mcfg *mysql.Config, on bool) {
	if mcfg.Params == nil {
		mcfg.Params = make(map[string]string)
	}
	if on {
		mcfg.Params["autocommit"] = "1"
	} else {
		mcfg.Params["autocommit"] = "0"
	}
}

func (d *Driver) applyPoolProperties(props *connector.Properties) {
	if ms, ok := props.Int64(connector.PoolKeyConnectTimeout); ok {
		d.acquireTimeout = database.Millis(ms)
	}
}

// --- database.DB implementation ---

// Ping verifies the database is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close drains the pool.
func (d *Driver) Close() {
	_ = d.db.Close()
}

// Conn takes a dedicated connection, waiting at most the pool connect
// timeout when one was configured.
func (d *Driver) Conn(ctx context.Context) (*sql.Conn, error) {
	ctx, cancel := database.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()

	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, mapError(err, "acquire failed")
	}
	return conn, nil
}

// DB returns the underlying pool.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// driverLogger routes go-sql-driver/mysql diagnostics through our logger.
type driverLogger struct {
	log *logger.Logger
}

func (l driverLogger) Print(v ...any) {
	l.log.Warn(fmt.Sprint(v...))
}

// --- error mapping ---

// mapError translates go-sql-driver/mysql errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(
			classifyMySQLCode(mysqlErr.Number),
			fmt.Sprintf("%s: %s", msg, mysqlErr.Message),
			err,
		)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifyMySQLCode maps MySQL error numbers to ErrKind.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
func classifyMySQLCode(code uint16) errs.ErrKind {
	switch code {
	case 1040, 1044, 1045, 1049, 1203, 2003:
		return errs.ErrKindConnectionFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
