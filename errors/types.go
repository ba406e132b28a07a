package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Backend transport errors
	ErrCodeBackendUnreachable ErrorCode = "BACKEND_UNREACHABLE"
	ErrCodeBackendStatus      ErrorCode = "BACKEND_STATUS"
	ErrCodeBackendResponse    ErrorCode = "BACKEND_RESPONSE"

	// Command errors
	ErrCodeCommandInFlight ErrorCode = "COMMAND_IN_FLIGHT"
	ErrCodeNoDevices       ErrorCode = "NO_DEVICES"
	ErrCodeFlashFailed     ErrorCode = "FLASH_FAILED"
	ErrCodeBuildFailed     ErrorCode = "BUILD_FAILED"

	// Validation errors
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeSchemaValidation ErrorCode = "SCHEMA_VALIDATION"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// HardcoreError represents a structured error with context
type HardcoreError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *HardcoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HardcoreError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *HardcoreError) WithDetail(key string, value interface{}) *HardcoreError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *HardcoreError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new HardcoreError
func New(code ErrorCode, message string) *HardcoreError {
	return &HardcoreError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HardcoreError
func Wrap(err error, code ErrorCode, message string) *HardcoreError {
	return &HardcoreError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific HardcoreError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	hcErr, ok := err.(*HardcoreError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return hcErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	hcErr, ok := err.(*HardcoreError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return hcErr.Code
}
