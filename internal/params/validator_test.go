package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/koustreak/sqlconnect/internal/errs"
)

type money struct{ cents int64 }

func TestInvalidParameter(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		sqlType  string
		contains []string
		excludes string
	}{
		{
			name:     "null",
			value:    Null(),
			sqlType:  "VARCHAR",
			contains: []string{"null", "VARCHAR"},
		},
		{
			name:     "nil native is null",
			value:    Native(nil),
			sqlType:  "CLOB",
			contains: []string{"null", "CLOB"},
		},
		{
			name:     "domain type name wins over native type",
			value:    Domain("Money", money{cents: 100}),
			sqlType:  "NUMBER",
			contains: []string{"Money", "NUMBER"},
			excludes: "params.money",
		},
		{
			name:     "native value",
			value:    Native(time.Now()),
			sqlType:  "INTEGER",
			contains: []string{"time.Time", "INTEGER"},
		},
		{
			name:     "native builtin",
			value:    Native(42),
			sqlType:  "DATE",
			contains: []string{"int", "DATE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InvalidParameter(tt.value, tt.sqlType)
			assert.True(t, errs.IsApplication(err))
			for _, s := range tt.contains {
				assert.Contains(t, err.Message, s)
			}
			if tt.excludes != "" {
				assert.NotContains(t, err.Message, tt.excludes)
			}
		})
	}
}

func TestInvalidParameter_Message(t *testing.T) {
	err := InvalidParameter(Null(), "VARCHAR")
	assert.Equal(t, "Invalid parameter: null is passed as value for SQL type: VARCHAR", err.Message)
}

func TestValue_Kind(t *testing.T) {
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindNull, Native(nil).Kind())
	assert.Equal(t, KindDomain, Domain("Point", nil).Kind())
	assert.Equal(t, KindNative, Native("x").Kind())
}
