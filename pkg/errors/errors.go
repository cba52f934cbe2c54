// Package errors provides structured error types for mypoly.
//
// This package defines error codes and types that enable:
//   - Consistent error reporting across the CLI, the terminal UI and the preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (unknown ids, bad colors, bad formats)
//   - NOT_FOUND: Catalog lookup misses
//   - OUT_OF_RANGE: Shape parameters outside their declared bounds
//   - TIMEOUT / INTERNAL_*: Export failures and unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSelection, "unknown hair option %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidSelection) {
//	    // Reject the mutation, state is unchanged
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "rasterize %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidSelection Code = "INVALID_SELECTION"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset    Code = "INVALID_PRESET"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Range errors
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Export errors
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NotFound reports a catalog lookup miss for id within category.
func NotFound(category, id string) *Error {
	return New(ErrCodeNotFound, "%s option %q not found", category, id)
}

// InvalidSelection reports an id that is not a valid choice for category.
func InvalidSelection(category, id string) *Error {
	return New(ErrCodeInvalidSelection, "%q is not a valid %s selection", id, category)
}

// RangeError describes a continuous parameter that fell outside its bounds.
// It carries the bounds so callers can clamp or display them.
type RangeError struct {
	Param    string
	Value    float64
	Min, Max float64
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s=%g outside [%g, %g]", ErrCodeOutOfRange, e.Param, e.Value, e.Min, e.Max)
}

// Code returns the error code for this error type.
func (e *RangeError) Code() Code {
	return ErrCodeOutOfRange
}

// OutOfRange wraps a RangeError in an *Error so Is(err, ErrCodeOutOfRange) holds.
func OutOfRange(param string, value, lo, hi float64) *Error {
	re := &RangeError{Param: param, Value: value, Min: lo, Max: hi}
	return &Error{
		Code:    ErrCodeOutOfRange,
		Message: fmt.Sprintf("%s must be within [%g, %g], got %g", param, lo, hi, value),
		Cause:   re,
	}
}
