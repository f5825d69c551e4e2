package options

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/koustreak/sqlconnect/internal/errs"
)

func TestMillis(t *testing.T) {
	tests := []struct {
		name    string
		input   Optional[Seconds]
		want    int64
		present bool
	}{
		{name: "fractional", input: Some(SecondsOf(2.5)), want: 2500, present: true},
		{name: "whole", input: Some(SecondsOf(30)), want: 30000, present: true},
		{name: "truncates toward zero", input: Some(SecondsOf(1.0009)), want: 1000, present: true},
		{name: "decimal exact", input: Some(SecondsOf(4.35)), want: 4350, present: true},
		{name: "sub-millisecond is present zero", input: Some(SecondsOf(0.0004)), want: 0, present: true},
		{name: "zero is absent", input: Some(SecondsOf(0))},
		{name: "negative is absent", input: Some(SecondsOf(-1))},
		{name: "unset is absent", input: None[Seconds]()},
		{name: "exact int64 limit", input: Some(mustSeconds(t, "9223372036854775.807")), want: math.MaxInt64, present: true},
		{name: "one past int64 saturates", input: Some(mustSeconds(t, "9223372036854775.808")), want: math.MaxInt64, present: true},
		{name: "huge saturates", input: Some(mustSeconds(t, "1e16")), want: math.MaxInt64, present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Millis(tt.input).Get()
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func mustSeconds(t *testing.T, s string) Seconds {
	t.Helper()
	v, err := ParseSeconds(s)
	require.NoError(t, err)
	return v
}

func TestOptional(t *testing.T) {
	var zero Optional[bool]
	assert.False(t, zero.IsSet())
	assert.True(t, zero.OrElse(true))

	f := Some(false)
	v, ok := f.Get()
	assert.True(t, ok)
	assert.False(t, v)
	assert.False(t, f.OrElse(true))
}

func TestClientOptions_YAML(t *testing.T) {
	const doc = `
loginTimeoutSeconds: 3
connectTimeoutSeconds: 2.5
socketTimeoutSeconds: null
autocommit: false
secureSocket:
  keystore:
    path: /etc/ssl/client.p12
    password: changeit
  keystoreType: PKCS12
  truststoreType: PEM
`
	var opts ClientOptions
	require.NoError(t, yaml.Unmarshal([]byte(doc), &opts))

	ms, ok := Millis(opts.LoginTimeout).Get()
	require.True(t, ok)
	assert.Equal(t, int64(3000), ms)

	ms, ok = Millis(opts.ConnectTimeout).Get()
	require.True(t, ok)
	assert.Equal(t, int64(2500), ms)

	assert.False(t, opts.SocketTimeout.IsSet(), "explicit null stays absent")

	autocommit, ok := opts.Autocommit.Get()
	require.True(t, ok, "false must still count as set")
	assert.False(t, autocommit)

	require.NotNil(t, opts.SecureSocket)
	require.NotNil(t, opts.SecureSocket.Keystore)
	assert.Equal(t, "/etc/ssl/client.p12", opts.SecureSocket.Keystore.Path)
	assert.Equal(t, "changeit", opts.SecureSocket.Keystore.Password)
	assert.Equal(t, "PKCS12", opts.SecureSocket.KeystoreType.OrElse(""))
	assert.Nil(t, opts.SecureSocket.Truststore)
	assert.Equal(t, "PEM", opts.SecureSocket.TruststoreType.OrElse(""))
}

func TestClientOptions_YAMLEmpty(t *testing.T) {
	var opts ClientOptions
	require.NoError(t, yaml.Unmarshal([]byte("{}"), &opts))

	assert.False(t, opts.LoginTimeout.IsSet())
	assert.False(t, opts.ConnectTimeout.IsSet())
	assert.False(t, opts.Autocommit.IsSet())
	assert.Nil(t, opts.SecureSocket)
}

func TestSeconds_YAMLRejectsText(t *testing.T) {
	var opts ClientOptions
	err := yaml.Unmarshal([]byte("connectTimeoutSeconds: soon"), &opts)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}
