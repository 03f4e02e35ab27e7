// Package errors provides structured error types for the Captain application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the run pipeline
//   - Machine-readable error codes for programmatic handling
//   - A single mapping from errors to process exit codes
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: structural validation failures
//   - UNREADABLE_*: files that could not be read or parsed
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "'commands' must be a list")
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUnreadableConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Run-configuration errors
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeUnreadableConfig Code = "UNREADABLE_CONFIG"

	// Manifest errors
	ErrCodeInvalidManifest    Code = "INVALID_MANIFEST"
	ErrCodeUnreadableManifest Code = "UNREADABLE_MANIFEST"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit codes. Structural configuration failures are distinguished
// so scripts can tell a bad config.yaml from an unreadable one.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitInvalidConfig = 2
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

// ExitCode maps err to the process exit code: nil exits 0, structural
// configuration failures exit 2, and everything else exits 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case Is(err, ErrCodeInvalidConfig):
		return ExitInvalidConfig
	default:
		return ExitFailure
	}
}
