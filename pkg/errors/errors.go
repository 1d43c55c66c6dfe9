// Package errors provides structured error types for poimap.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that the CLI, the HTTP API and the recalculation pipeline can
// react to the category of failure without string matching.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NO_*, UNKNOWN_*: Position resolution failures
//   - *_NOT_FOUND: Missing stored resources
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownReference, "target POI %s not found", id)
//	if errors.Is(err, errors.ErrCodeUnknownReference) {
//	    // Skip the record
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "failed to save map %s", mapID)
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
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidBearing  Code = "INVALID_BEARING"
	ErrCodeInvalidDistance Code = "INVALID_DISTANCE"
	ErrCodeInvalidCategory Code = "INVALID_CATEGORY"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Position resolution errors
	ErrCodeNoBearingData     Code = "NO_BEARING_DATA"
	ErrCodeUnknownReference  Code = "UNKNOWN_REFERENCE"
	ErrCodeNoValidReferences Code = "NO_VALID_REFERENCES"
	ErrCodeCyclicReference   Code = "CYCLIC_REFERENCE"
	ErrCodeSelfReference     Code = "SELF_REFERENCE"

	// Resource not found errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeMapNotFound Code = "MAP_NOT_FOUND"
	ErrCodePOINotFound Code = "POI_NOT_FOUND"

	// Infrastructure errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// IsNotFound reports whether err carries any of the not-found codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeMapNotFound, ErrCodePOINotFound:
		return true
	}
	return false
}

// IsInvalid reports whether err is an input validation failure.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidBearing,
		ErrCodeInvalidDistance, ErrCodeInvalidCategory, ErrCodeInvalidPath,
		ErrCodeSelfReference:
		return true
	}
	return false
}
