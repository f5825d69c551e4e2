package postgres

import (
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/sqlconnect/internal/errs"
)

// vendorHandle is implemented by *pgxpool.Conn and *stdlib.Conn.
type vendorHandle interface {
	Conn() *pgx.Conn
}

// VendorConn returns the *pgx.Conn behind a pooled connection handle.
// Handles from another driver, or from a wrapper that hides the pgx
// connection, fail with ErrKindDriverMismatch.
func VendorConn(handle any) (*pgx.Conn, error) {
	if h, ok := handle.(vendorHandle); ok {
		if conn := h.Conn(); conn != nil {
			return conn, nil
		}
	}
	return nil, errs.Newf(errs.ErrKindDriverMismatch,
		"cannot cast connection to vendor connection: %T is not a pgx connection", handle)
}

// WithVendorConn runs fn with the *pgx.Conn behind a database/sql
// connection. The pgx connection must not be retained after fn returns.
func WithVendorConn(conn *sql.Conn, fn func(*pgx.Conn) error) error {
	return conn.Raw(func(driverConn any) error {
		pc, err := VendorConn(driverConn)
		if err != nil {
			return err
		}
		return fn(pc)
	})
}
