package connector

// Property keys understood by every connection factory in this module.
// Timeouts are whole milliseconds (int64).
const (
	KeyLoginTimeout   = "loginTimeout"
	KeyConnectTimeout = "net.connectTimeout"
	KeyReadTimeout    = "net.readTimeout"
	KeyAutocommit     = "autocommit"

	KeyKeystore           = "ssl.keyStore"
	KeyKeystorePassword   = "ssl.keyStorePassword"
	KeyKeystoreType       = "ssl.keyStoreType"
	KeyTruststore         = "ssl.trustStore"
	KeyTruststorePassword = "ssl.trustStorePassword"
	KeyTruststoreType     = "ssl.trustStoreType"
)

// Pool property keys.
const (
	PoolKeyConnectTimeout = "pool.connectionTimeout"
	PoolKeyAutocommit     = "pool.autocommit"
)

// secretKeys are masked by Properties.Redacted.
var secretKeys = map[string]bool{
	KeyKeystorePassword:   true,
	KeyTruststorePassword: true,
}
