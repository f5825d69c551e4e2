// Package tlsconf turns the ssl.* connection properties into a *tls.Config.
//
// Keystores supply the client certificate, truststores the CA pool used to
// verify the server. Supported store types are PEM and PKCS12; the type
// defaults to PEM when not given.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"strings"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/koustreak/sqlconnect/internal/connector"
	"github.com/koustreak/sqlconnect/internal/errs"
)

// Store types.
const (
	TypePEM    = "PEM"
	TypePKCS12 = "PKCS12"
)

var tlsKeys = []string{
	connector.KeyKeystore,
	connector.KeyKeystorePassword,
	connector.KeyKeystoreType,
	connector.KeyTruststore,
	connector.KeyTruststorePassword,
	connector.KeyTruststoreType,
}

// Enabled reports whether props carry any TLS key.
func Enabled(props *connector.Properties) bool {
	for _, k := range tlsKeys {
		if props.Has(k) {
			return true
		}
	}
	return false
}

// Build returns the TLS configuration described by props, or nil when
// props carry no TLS key.
func Build(props *connector.Properties) (*tls.Config, error) {
	if !Enabled(props) {
		return nil, nil
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if path, ok := props.String(connector.KeyKeystore); ok {
		password, _ := props.String(connector.KeyKeystorePassword)
		cert, err := loadKeyPair(path, password, storeType(props, connector.KeyKeystoreType))
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if path, ok := props.String(connector.KeyTruststore); ok {
		password, _ := props.String(connector.KeyTruststorePassword)
		pool, err := loadCertPool(path, password, storeType(props, connector.KeyTruststoreType))
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

func storeType(props *connector.Properties, key string) string {
	t, ok := props.String(key)
	if !ok || t == "" {
		return TypePEM
	}
	t = strings.ToUpper(t)
	if t == "P12" || t == "PFX" {
		return TypePKCS12
	}
	return t
}

func readStore(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot read store "+path, err)
	}
	return data, nil
}

func loadKeyPair(path, password, typ string) (tls.Certificate, error) {
	data, err := readStore(path)
	if err != nil {
		return tls.Certificate{}, err
	}

	switch typ {
	case TypePEM:
		// cert and key live in the same file
		cert, err := tls.X509KeyPair(data, data)
		if err != nil {
			return tls.Certificate{}, errs.Wrap(errs.ErrKindInvalidInput, "invalid PEM keystore "+path, err)
		}
		return cert, nil
	case TypePKCS12:
		key, leaf, chain, err := pkcs12.DecodeChain(data, password)
		if err != nil {
			return tls.Certificate{}, errs.Wrap(errs.ErrKindInvalidInput, "invalid PKCS12 keystore "+path, err)
		}
		cert := tls.Certificate{
			Certificate: [][]byte{leaf.Raw},
			PrivateKey:  key,
			Leaf:        leaf,
		}
		for _, c := range chain {
			cert.Certificate = append(cert.Certificate, c.Raw)
		}
		return cert, nil
	default:
		return tls.Certificate{}, errs.Newf(errs.ErrKindInvalidInput, "unsupported keystore type %q", typ)
	}
}

func loadCertPool(path, password, typ string) (*x509.CertPool, error) {
	data, err := readStore(path)
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	switch typ {
	case TypePEM:
		if !pool.AppendCertsFromPEM(data) {
			return nil, errs.New(errs.ErrKindInvalidInput, "no certificates in PEM truststore "+path)
		}
	case TypePKCS12:
		certs, err := trustedCerts(data, password)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid PKCS12 truststore "+path, err)
		}
		if len(certs) == 0 {
			return nil, errs.New(errs.ErrKindInvalidInput, "no certificates in PKCS12 truststore "+path)
		}
		for _, c := range certs {
			pool.AddCert(c)
		}
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported truststore type %q", typ)
	}
	return pool, nil
}

// trustedCerts reads a PKCS#12 truststore. Java-style trust stores hold only
// trusted certificate bags; a keystore used as truststore contributes its
// leaf and chain instead.
func trustedCerts(data []byte, password string) ([]*x509.Certificate, error) {
	certs, err := pkcs12.DecodeTrustStore(data, password)
	if err == nil {
		return certs, nil
	}
	_, leaf, chain, chainErr := pkcs12.DecodeChain(data, password)
	if chainErr != nil {
		return nil, err
	}
	return append([]*x509.Certificate{leaf}, chain...), nil
}
