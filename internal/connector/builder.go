// Package connector translates options.ClientOptions into the property sets
// consumed by the connection and pool factories.
//
// The builders are pure: they allocate a fresh property set per call, do no
// I/O and never log. An option that was not supplied, or a timeout that is
// not positive, produces no entry at all so the driver default applies.
package connector

import (
	"github.com/koustreak/sqlconnect/internal/options"
)

// ConnectorOptions is everything a connection factory needs besides the DSN.
type ConnectorOptions struct {
	// LoginTimeout bounds the first round trip that validates a new client.
	LoginTimeout options.Optional[int64]

	// Properties is absent when no connection property was produced.
	Properties options.Optional[*Properties]
}

// BuildConnectorOptions resolves the login timeout and the connection
// property set for a client.
func BuildConnectorOptions(opts options.ClientOptions) ConnectorOptions {
	var co ConnectorOptions
	if ms, ok := options.Millis(opts.LoginTimeout).Get(); ok && ms >= 0 {
		co.LoginTimeout = options.Some(ms)
	}
	if props := BuildConnectionProperties(opts); props.Len() > 0 {
		co.Properties = options.Some(props)
	}
	return co
}

// BuildConnectionProperties returns the per-connection properties:
// connect timeout, read timeout, autocommit and, when a secure socket block
// is given, the TLS keys.
func BuildConnectionProperties(opts options.ClientOptions) *Properties {
	props := NewProperties()

	if ms, ok := options.Millis(opts.ConnectTimeout).Get(); ok && ms >= 0 {
		props.SetInt64(KeyConnectTimeout, ms)
	}
	if ms, ok := options.Millis(opts.SocketTimeout).Get(); ok && ms >= 0 {
		props.SetInt64(KeyReadTimeout, ms)
	}
	if autocommit, ok := opts.Autocommit.Get(); ok {
		props.SetBool(KeyAutocommit, autocommit)
	}
	if opts.SecureSocket != nil {
		props.Merge(MapSecureSocket(*opts.SecureSocket))
	}

	return props
}

// BuildPoolProperties returns the pool-level properties, or None when the
// options carry nothing the pool needs to customise.
//
// Unlike BuildConnectionProperties, a connect timeout that truncates to
// 0 ms is dropped here.
func BuildPoolProperties(opts options.ClientOptions) options.Optional[*Properties] {
	props := NewProperties()

	if ms, ok := options.Millis(opts.ConnectTimeout).Get(); ok && ms > 0 {
		props.SetInt64(PoolKeyConnectTimeout, ms)
	}
	if autocommit, ok := opts.Autocommit.Get(); ok {
		props.SetBool(PoolKeyAutocommit, autocommit)
	}

	if props.Len() == 0 {
		return options.None[*Properties]()
	}
	return options.Some(props)
}
