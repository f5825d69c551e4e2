// Package errs provides the unified error type used across sqlconnect.
//
// Translators, TLS loading and the driver factories all return *errs.Error.
// Callers use the Is* predicates to branch on the kind of failure without
// importing driver-specific packages.
//
// Usage:
//
//	// In a driver, wrap native errors:
//	return errs.Wrap(errs.ErrKindConnectionFailed, "ping failed", pgErr)
//
//	// In a caller, check the error kind:
//	if errs.IsApplication(err) {
//	    // caller supplied a value that does not fit the SQL type
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing driver-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // no rows matched
	ErrKindConnectionFailed         // cannot reach or authenticate to the backend
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // SQL execution error
	ErrKindInvalidInput             // bad configuration from the caller
	ErrKindApplication              // value does not match the declared SQL type
	ErrKindDriverMismatch           // pooled handle is not backed by the vendor driver
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindApplication:
		return "application"
	case ErrKindDriverMismatch:
		return "driver_mismatch"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by sqlconnect packages.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotFound reports whether err represents a "no rows" result.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a SQL execution failure.
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad configuration.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsApplication reports whether err is a parameter/SQL-type mismatch.
// These are never retried; the caller has to correct its input.
func IsApplication(err error) bool {
	return KindOf(err) == ErrKindApplication
}

// IsDriverMismatch reports whether err means a pooled connection could not
// be unwrapped to the vendor connection (wrong driver or pool wrapping).
func IsDriverMismatch(err error) bool {
	return KindOf(err) == ErrKindDriverMismatch
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
