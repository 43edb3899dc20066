// Package errors provides the coded error kinds used across dargo.
//
// Every failure the engine can produce carries a [Code]. Codes split into two
// families that drive batch behavior:
//
//   - Recoverable per-package outcomes (a package that does not exist, an entry
//     that is already present, a name with too many separator variants). Batch
//     planners downgrade these to warnings and keep going.
//   - Structural failures (an unreadable manifest, an invalid requirement, an
//     unreachable registry). These abort the whole command.
//
// Use [Recoverable] to tell them apart.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSlotExists, "%s already exists in %s", name, section)
//	if errors.Is(err, errors.ErrCodeSlotExists) {
//	    // report and skip
//	}
//
//	err := errors.Wrap(errors.ErrCodeRegistry, cause, "query %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Manifest errors
	ErrCodeManifestNotFound Code = "MANIFEST_NOT_FOUND"
	ErrCodeInvalidManifest  Code = "INVALID_MANIFEST"
	ErrCodeVirtualWorkspace Code = "VIRTUAL_WORKSPACE"

	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidRequirement Code = "INVALID_REQUIREMENT"

	// Registry errors
	ErrCodeRegistry          Code = "REGISTRY_ERROR"
	ErrCodePackageNotFound   Code = "PACKAGE_NOT_FOUND"
	ErrCodeNoVersions        Code = "NO_VERSIONS"
	ErrCodeTooManyVariants   Code = "TOO_MANY_VARIANTS"
	ErrCodeUnsupportedSource Code = "UNSUPPORTED_SOURCE"

	// Slot errors
	ErrCodeSlotExists   Code = "SLOT_EXISTS"
	ErrCodeSlotNotFound Code = "SLOT_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// recoverable lists the codes that only affect a single package of a batch.
var recoverable = map[Code]bool{
	ErrCodePackageNotFound:   true,
	ErrCodeNoVersions:        true,
	ErrCodeTooManyVariants:   true,
	ErrCodeUnsupportedSource: true,
	ErrCodeSlotExists:        true,
	ErrCodeSlotNotFound:      true,
}

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

// Recoverable reports whether err only concerns one item of a batch and may be
// reported as a warning without aborting the rest. Nil and uncoded errors are
// not recoverable.
func Recoverable(err error) bool {
	return recoverable[GetCode(err)]
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
