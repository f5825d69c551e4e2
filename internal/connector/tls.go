package connector

import "github.com/koustreak/sqlconnect/internal/options"

// MapSecureSocket maps the TLS block onto the ssl.* keys.
//
// Each field is mapped on its own: a store type is emitted whether or not
// the matching store is present, and a store emits both its path and its
// password. Passwords are copied verbatim.
func MapSecureSocket(s options.SecureSocketOptions) *Properties {
	props := NewProperties()

	if ks := s.Keystore; ks != nil {
		props.SetString(KeyKeystore, ks.Path)
		props.SetString(KeyKeystorePassword, ks.Password)
	}
	if t, ok := s.KeystoreType.Get(); ok {
		props.SetString(KeyKeystoreType, t)
	}

	if ts := s.Truststore; ts != nil {
		props.SetString(KeyTruststore, ts.Path)
		props.SetString(KeyTruststorePassword, ts.Password)
	}
	if t, ok := s.TruststoreType.Get(); ok {
		props.SetString(KeyTruststoreType, t)
	}

	return props
}
