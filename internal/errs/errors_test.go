package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without cause",
			err:      New(ErrKindApplication, "bad value"),
			expected: "[application] bad value",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrKindConnectionFailed, "ping failed", errors.New("refused")),
			expected: "[connection_failed] ping failed: refused",
		},
		{
			name:     "formatted",
			err:      Newf(ErrKindInvalidInput, "unsupported keystore type %q", "JKS"),
			expected: `[invalid_input] unsupported keystore type "JKS"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", New(ErrKindNotFound, "x"), IsNotFound},
		{"timeout", New(ErrKindTimeout, "x"), IsTimeout},
		{"connection", New(ErrKindConnectionFailed, "x"), IsConnectionFailed},
		{"query", New(ErrKindQueryFailed, "x"), IsQueryFailed},
		{"invalid input", New(ErrKindInvalidInput, "x"), IsInvalidInput},
		{"application", New(ErrKindApplication, "x"), IsApplication},
		{"driver mismatch", New(ErrKindDriverMismatch, "x"), IsDriverMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)), "predicate must see through wrapping")
		})
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
	assert.False(t, IsApplication(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(ErrKindTimeout, "deadline", cause)
	assert.ErrorIs(t, err, cause)
}
