// Package errors provides structured error reporting for kit components.
//
// Components never surface failures to their callers as panics. Guarded
// preconditions, clamped inputs and recovered callback panics are reported
// to a pluggable [ErrorHandler] and the component degrades to doing nothing.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPrecondition indicates a guarded precondition, such as mapping
	// indices over an empty item list.
	KindPrecondition
	// KindRange indicates an input outside its valid range that was clamped.
	KindRange
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindRestore indicates a state restoration failure.
	KindRestore
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindRange:
		return "range"
	case KindConfig:
		return "config"
	case KindRestore:
		return "restore"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// KitError represents a structured, non-fatal error.
type KitError struct {
	// Op is the operation that failed (e.g., "wheel.Picker.Update").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *KitError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KitError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "wheel.Picker.OnChange").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// RangeError describes a value that fell outside [Min, Max].
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

// ErrorHandler receives errors reported by kit components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *KitError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
