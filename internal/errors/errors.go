// Package errors defines the typed errors shared by the bridge components.
// Every error carries a code and unwraps to its cause.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown    = "UNKNOWN"
	CodeValidation = "VALIDATION"
	CodeGateway    = "GATEWAY"
	CodeAdapter    = "ADAPTER"
	CodeConfig     = "CONFIG"
	CodeDatabase   = "DATABASE"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't have one.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// ValidationError reports user input that was rejected before any backend call.
type ValidationError struct {
	base Error
}

func (e *ValidationError) Error() string {
	return e.base.Error()
}

func (e *ValidationError) Code() string {
	return e.base.Code()
}

func (e *ValidationError) Unwrap() error {
	return e.base.Unwrap()
}

func NewValidationError(message string, cause error) error {
	return &ValidationError{
		base: Error{
			code:    CodeValidation,
			message: message,
			err:     cause,
		},
	}
}

// GatewayError reports any failure of the AI backend.
type GatewayError struct {
	base     Error
	Provider string
}

func (e *GatewayError) Error() string {
	if e.Provider != "" {
		return e.Provider + ": " + e.base.Error()
	}
	return e.base.Error()
}

func (e *GatewayError) Code() string {
	return e.base.Code()
}

func (e *GatewayError) Unwrap() error {
	return e.base.Unwrap()
}

func NewGatewayError(provider, message string, cause error) error {
	return &GatewayError{
		Provider: provider,
		base: Error{
			code:    CodeGateway,
			message: message,
			err:     cause,
		},
	}
}

// AdapterError reports a failed outbound call to the chat platform.
type AdapterError struct {
	base Error
}

func (e *AdapterError) Error() string {
	return e.base.Error()
}

func (e *AdapterError) Code() string {
	return e.base.Code()
}

func (e *AdapterError) Unwrap() error {
	return e.base.Unwrap()
}

func NewAdapterError(message string, cause error) error {
	return &AdapterError{
		base: Error{
			code:    CodeAdapter,
			message: message,
			err:     cause,
		},
	}
}

type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string {
	return e.base.Error()
}

func (e *ConfigError) Code() string {
	return e.base.Code()
}

func (e *ConfigError) Unwrap() error {
	return e.base.Unwrap()
}

func NewConfigError(message string, cause error) error {
	return &ConfigError{
		base: Error{
			code:    CodeConfig,
			message: message,
			err:     cause,
		},
	}
}

type DatabaseError struct {
	base Error
}

func (e *DatabaseError) Error() string {
	return e.base.Error()
}

func (e *DatabaseError) Code() string {
	return e.base.Code()
}

func (e *DatabaseError) Unwrap() error {
	return e.base.Unwrap()
}

func NewDatabaseError(message string, cause error) error {
	return &DatabaseError{
		base: Error{
			code:    CodeDatabase,
			message: message,
			err:     cause,
		},
	}
}
