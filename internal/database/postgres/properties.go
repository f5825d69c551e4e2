package postgres

import (
	"context"
	"net"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/sqlconnect/internal/connector"
	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/logger"
	"github.com/koustreak/sqlconnect/internal/tlsconf"
)

// applyConnectionProperties maps the connector keys onto a pgx connection
// config. Keys that are absent leave the DSN/driver defaults untouched.
func applyConnectionProperties(cc *pgx.ConnConfig, props *connector.Properties, log *logger.Logger) error {
	if ms, ok := props.Int64(connector.KeyConnectTimeout); ok {
		cc.ConnectTimeout = database.Millis(ms)
	}

	if ms, ok := props.Int64(connector.KeyReadTimeout); ok && ms > 0 {
		dial := cc.DialFunc
		if dial == nil {
			dial = (&net.Dialer{}).DialContext
		}
		timeout := database.Millis(ms)
		cc.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dial(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return newReadTimeoutConn(conn, timeout), nil
		}
	}

	if autocommit, ok := props.Bool(connector.KeyAutocommit); ok && !autocommit {
		log.Warn("postgres sessions autocommit outside explicit transactions; autocommit=false ignored")
	}

	tlsCfg, err := tlsconf.Build(props)
	if err != nil {
		return err
	}
	if tlsCfg != nil {
		if tlsCfg.ServerName == "" {
			tlsCfg.ServerName = cc.Host
		}
		cc.TLSConfig = tlsCfg
		// a secure socket block means TLS is mandatory
		cc.Fallbacks = nil
	}

	return nil
}

// applyPoolProperties maps the pool keys onto the driver.
func (d *Driver) applyPoolProperties(props *connector.Properties) {
	if ms, ok := props.Int64(connector.PoolKeyConnectTimeout); ok {
		d.acquireTimeout = database.Millis(ms)
	}
	if _, ok := props.Bool(connector.PoolKeyAutocommit); ok {
		d.log.Debug("pool autocommit has no postgres equivalent")
	}
}
