// Package errors provides structured error values for the Kestrel toolkit.
//
// Every fallible operation in the core returns a *Error carrying the
// operation name and a Kind identifying the failure class. The core never
// panics on reachable input; capacity and stale-handle failures are
// reported to the caller and leave the toolkit state unchanged.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindCapacity indicates a fixed-capacity pool is full.
	KindCapacity
	// KindInvalidHandle indicates a handle whose generation no longer
	// matches a live slot.
	KindInvalidHandle
	// KindTheme indicates a theme definition could not be parsed.
	KindTheme
)

func (k Kind) String() string {
	switch k {
	case KindCapacity:
		return "capacity"
	case KindInvalidHandle:
		return "invalid handle"
	case KindTheme:
		return "theme"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the toolkit.
type Error struct {
	// Op is the operation that failed (e.g., "widget.Tree.Add").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Capacity returns a KindCapacity error for the named pool.
func Capacity(op, pool string, limit int) *Error {
	return &Error{
		Op:   op,
		Kind: KindCapacity,
		Err:  fmt.Errorf("%s pool full (capacity %d)", pool, limit),
	}
}

// InvalidHandle returns a KindInvalidHandle error.
func InvalidHandle(op string) *Error {
	return &Error{Op: op, Kind: KindInvalidHandle}
}

// Theme returns a KindTheme error wrapping err.
func Theme(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTheme, Err: err}
}

// As unwraps err into a *Error, reporting whether one was found.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// IsCapacity reports whether err is a KindCapacity *Error.
func IsCapacity(err error) bool {
	return isKind(err, KindCapacity)
}

// IsInvalidHandle reports whether err is a KindInvalidHandle *Error.
func IsInvalidHandle(err error) bool {
	return isKind(err, KindInvalidHandle)
}

// IsTheme reports whether err is a KindTheme *Error.
func IsTheme(err error) bool {
	return isKind(err, KindTheme)
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
