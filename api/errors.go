// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-waitset library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrUnsupportedPlatform = fmt.Errorf("platform is not supported")
)

// ErrorCode identifies a specific failure condition in the library.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeInternal
	CodeCapacityExhausted
	CodeAlreadyAttached
	CodeInvalidDescriptor
	CodeInvalidDuration
	CodeWaitSetClosed
	CodeNoAttachments
	CodeUnsupportedPlatform
)

// String returns a stable name for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInternal:
		return "internal"
	case CodeCapacityExhausted:
		return "capacity exhausted"
	case CodeAlreadyAttached:
		return "already attached"
	case CodeInvalidDescriptor:
		return "invalid descriptor"
	case CodeInvalidDuration:
		return "invalid duration"
	case CodeWaitSetClosed:
		return "wait set closed"
	case CodeNoAttachments:
		return "no attachments"
	case CodeUnsupportedPlatform:
		return "unsupported platform"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// CreateError reports a failure to construct a wait set.
type CreateError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewCreateError creates a structured creation error.
func NewCreateError(code ErrorCode, message string) *CreateError {
	return &CreateError{Code: code, Message: message}
}

// WithCause attaches the underlying OS error.
func (e *CreateError) WithCause(cause error) *CreateError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *CreateError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("create wait set: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("create wait set: %s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the underlying OS error to errors.Is and errors.As.
func (e *CreateError) Unwrap() error { return e.Cause }

// AttachmentError reports a failure to attach an event source to a wait set.
type AttachmentError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewAttachmentError creates a structured attachment error.
func NewAttachmentError(code ErrorCode, message string) *AttachmentError {
	return &AttachmentError{Code: code, Message: message}
}

// WithCause attaches the underlying OS error.
func (e *AttachmentError) WithCause(cause error) *AttachmentError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *AttachmentError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("attach: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("attach: %s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the underlying OS error to errors.Is and errors.As.
func (e *AttachmentError) Unwrap() error { return e.Cause }

// RunError reports a true failure of the wait mechanism. Stop requests,
// termination requests and interrupts are run results, not errors.
type RunError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewRunError creates a structured run error.
func NewRunError(code ErrorCode, message string) *RunError {
	return &RunError{Code: code, Message: message}
}

// WithCause attaches the underlying OS error.
func (e *RunError) WithCause(cause error) *RunError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("wait: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("wait: %s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the underlying OS error to errors.Is and errors.As.
func (e *RunError) Unwrap() error { return e.Cause }
