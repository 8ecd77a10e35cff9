package errors

import (
	"fmt"
)

// DefaultGatewayErrorCode is used when an ERROR document carries no ERRORCODE
const DefaultGatewayErrorCode = "0"

// GatewayError is returned whenever the gateway answers with an ERROR document.
// Examples seen in the wild: E08 INVALID MERCHANTREF, E10 INVALID CARDNUMBER, E13 INVALID HASH.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
}

// NewGatewayError creates a gateway error, defaulting an empty code to DefaultGatewayErrorCode
func NewGatewayError(code, message string) *GatewayError {
	if code == "" {
		code = DefaultGatewayErrorCode
	}
	return &GatewayError{
		Code:    code,
		Message: message,
	}
}

// TransportError wraps any failure to obtain or decode a gateway response:
// network errors, timeouts, unreadable bodies and malformed XML.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error for the given operation
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{
		Op:  op,
		Err: err,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
