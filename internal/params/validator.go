// Package params classifies parameter values that do not fit the SQL type
// they were bound to.
package params

import (
	"fmt"

	"github.com/koustreak/sqlconnect/internal/errs"
)

// Kind identifies what a Value carries.
type Kind int

const (
	KindNull   Kind = iota // SQL NULL / nil
	KindDomain             // a value that declares its own type name
	KindNative             // a plain Go value
)

// Value is a parameter as seen by the validator.
type Value struct {
	kind     Kind
	typeName string
	v        any
}

// Null returns the NULL value.
func Null() Value {
	return Value{kind: KindNull}
}

// Domain wraps a value whose type is described by typeName,
// e.g. a user-defined record or object type.
func Domain(typeName string, v any) Value {
	return Value{kind: KindDomain, typeName: typeName, v: v}
}

// Native wraps a plain Go value. A nil value is treated as Null.
func Native(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindNative, v: v}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// TypeName describes the type of the value for error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindDomain:
		return v.typeName
	case KindNative:
		return fmt.Sprintf("%T", v.v)
	default:
		return "null"
	}
}

// InvalidParameter returns the error reported when v cannot be passed as
// sqlType. It does not decide whether v is actually invalid; callers
// invoke it once they have.
func InvalidParameter(v Value, sqlType string) *errs.Error {
	return errs.Newf(errs.ErrKindApplication,
		"Invalid parameter: %s is passed as value for SQL type: %s", v.TypeName(), sqlType)
}
