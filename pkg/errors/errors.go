// Package errors provides structured error types for inkframe.
//
// The layout engine distinguishes three outcomes:
//   - Precondition errors: the caller passed structurally invalid input.
//     These are returned as *Error values with a machine-readable Code and
//     abort the operation before anything is changed.
//   - Constraint violations: never errors. They are reported as warnings by
//     the constraints package.
//   - Dangling references (an assignment pointing at a deleted master): not
//     errors either. They resolve to "no master".
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND: unknown identifiers
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
//	if errors.Is(err, errors.ErrCodeWidgetNotFound) {
//	    // Handle unknown widget
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTemplate, origErr, "read %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidDevice   Code = "INVALID_DEVICE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeEmptyLayout     Code = "EMPTY_LAYOUT"
	ErrCodeScopeConflict   Code = "SCOPE_CONFLICT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"
	ErrCodeMasterNotFound Code = "MASTER_NOT_FOUND"
	ErrCodeDeviceNotFound Code = "DEVICE_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

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

// UnknownError reports an identifier that did not resolve, with the
// identifiers that would have.
type UnknownError struct {
	What  string   // "device", "master", ...
	Name  string   // the identifier that was asked for
	Known []string // valid identifiers, if cheap to list
}

// Error implements the error interface.
func (e *UnknownError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("unknown %s %q (known: %v)", e.What, e.Name, e.Known)
	}
	return fmt.Sprintf("unknown %s %q", e.What, e.Name)
}

// Code returns the error code for this error type.
func (e *UnknownError) Code() Code {
	switch e.What {
	case "widget":
		return ErrCodeWidgetNotFound
	case "master":
		return ErrCodeMasterNotFound
	case "device":
		return ErrCodeDeviceNotFound
	}
	return ErrCodeNotFound
}
