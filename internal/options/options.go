// Package options holds the client configuration a caller supplies when
// constructing a client or a pool.
//
// Every field is independently optional. Absent fields never default to a
// zero value: the translators in package connector emit a property only
// for fields that were supplied.
package options

// ClientOptions is the caller-facing configuration of a database client.
type ClientOptions struct {
	LoginTimeout   Optional[Seconds]    `yaml:"loginTimeoutSeconds"`
	ConnectTimeout Optional[Seconds]    `yaml:"connectTimeoutSeconds"`
	SocketTimeout  Optional[Seconds]    `yaml:"socketTimeoutSeconds"`
	Autocommit     Optional[bool]       `yaml:"autocommit"`
	SecureSocket   *SecureSocketOptions `yaml:"secureSocket"`
}

// SecureSocketOptions is the TLS keystore/truststore block.
type SecureSocketOptions struct {
	Keystore       *StoreOptions    `yaml:"keystore"`
	KeystoreType   Optional[string] `yaml:"keystoreType"`
	Truststore     *StoreOptions    `yaml:"truststore"`
	TruststoreType Optional[string] `yaml:"truststoreType"`
}

// StoreOptions locates a keystore or truststore file.
type StoreOptions struct {
	Path     string `yaml:"path"`
	Password string `yaml:"password"`
}
