package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ValidationError so callers can map it (e.g. to HTTP statuses).
type ErrorKind string

const (
	KindInvalid   ErrorKind = "invalid"
	KindDuplicate ErrorKind = "duplicate"
	KindNotFound  ErrorKind = "not_found"
	KindCapacity  ErrorKind = "capacity"
)

// ValidationError reports a business-rule violation: duplicate names, unknown
// references, capacity, out-of-range values or malformed dates.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "validation failed"
	}
	return msg
}

// CapabilityError reports an argument that lacks the identity shape an operation needs.
type CapabilityError struct {
	Argument string
	Message  string
}

func (e *CapabilityError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "argument lacks a name-bearing identity"
	}
	if e.Argument != "" {
		return fmt.Sprintf("%s: %s", e.Argument, msg)
	}
	return msg
}

// Invalid builds a KindInvalid ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Duplicate builds a KindDuplicate ValidationError.
func Duplicate(format string, args ...any) error {
	return &ValidationError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound ValidationError.
func NotFound(format string, args ...any) error {
	return &ValidationError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// CapacityExceeded builds a KindCapacity ValidationError.
func CapacityExceeded(format string, args ...any) error {
	return &ValidationError{Kind: KindCapacity, Message: fmt.Sprintf(format, args...)}
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// AsCapabilityError attempts to unwrap an error into a CapabilityError.
func AsCapabilityError(err error) (*CapabilityError, bool) {
	var cErr *CapabilityError
	if errors.As(err, &cErr) {
		return cErr, true
	}
	return nil, false
}

// IsKind reports whether err is a ValidationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	vErr, ok := AsValidationError(err)
	return ok && vErr.Kind == kind
}
