// Package errors provides typed errors for the application
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeTooLarge
	ErrorTypeTransport
	ErrorTypeInternal
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation: "validation",
	ErrorTypeNotFound:   "not_found",
	ErrorTypeTooLarge:   "too_large",
	ErrorTypeTransport:  "transport",
	ErrorTypeInternal:   "internal",
}

// String returns the string representation of ErrorType
func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return errorTypeNames[ErrorTypeInternal]
}

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents bad user input, such as a message without a link
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents a missing resource, such as a vanished artifact
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// TooLargeError is returned when a file exceeds the delivery ceiling
type TooLargeError struct {
	baseError
	Size  int64
	Limit int64
}

// NewTooLargeError creates a new TooLargeError
func NewTooLargeError(msg string, size, limit int64) *TooLargeError {
	return &TooLargeError{baseError: baseError{msg: msg}, Size: size, Limit: limit}
}

// TransportError represents a failure reported by the chat transport
type TransportError struct {
	baseError
	cause error
}

// NewTransportError creates a new TransportError wrapping cause
func NewTransportError(msg string, cause error) *TransportError {
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &TransportError{baseError: baseError{msg: msg}, cause: cause}
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.cause
}

// InternalError represents an internal failure
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsTooLargeError checks if error is a TooLargeError
func IsTooLargeError(err error) bool {
	var target *TooLargeError
	return errors.As(err, &target)
}

// IsTransportError checks if error is a TransportError
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// TypeOf reports the ErrorType of err, defaulting to ErrorTypeInternal
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsNotFoundError(err):
		return ErrorTypeNotFound
	case IsTooLargeError(err):
		return ErrorTypeTooLarge
	case IsTransportError(err):
		return ErrorTypeTransport
	case IsInternalError(err):
		return ErrorTypeInternal
	default:
		return ErrorTypeInternal
	}
}
