package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HardcoreError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *HardcoreError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// BackendUnreachable creates a transport-level backend error
func BackendUnreachable(endpoint string, err error) *HardcoreError {
	return Wrap(err, ErrCodeBackendUnreachable,
		fmt.Sprintf("backend request to %s failed", endpoint)).
		WithDetail("endpoint", endpoint)
}

// BackendStatus creates an error for a non-2xx backend response
func BackendStatus(endpoint string, status int) *HardcoreError {
	return New(ErrCodeBackendStatus,
		fmt.Sprintf("backend returned status %d for %s", status, endpoint)).
		WithDetail("endpoint", endpoint).
		WithDetail("status", status)
}

// CommandInFlight creates an error for a rejected re-entrant command
func CommandInFlight(kind string) *HardcoreError {
	return New(ErrCodeCommandInFlight,
		fmt.Sprintf("a %s command is already in flight", kind)).
		WithDetail("kind", kind)
}

// NoDevices creates an error for an empty detection result
func NoDevices() *HardcoreError {
	return New(ErrCodeNoDevices,
		"no boards detected; make sure your board is connected and drivers are installed")
}

// FlashFailed creates a flash failure error
func FlashFailed(port string, reason string) *HardcoreError {
	return New(ErrCodeFlashFailed, fmt.Sprintf("flash failed: %s", reason)).
		WithDetail("port", port)
}

// InvalidInput creates a validation error caught before any network call
func InvalidInput(reason string) *HardcoreError {
	return New(ErrCodeInvalidInput, reason)
}

// SchemaValidation creates a peripheral config schema validation error
func SchemaValidation(path string, err error) *HardcoreError {
	return Wrap(err, ErrCodeSchemaValidation,
		fmt.Sprintf("peripheral configuration failed schema validation: %s", path)).
		WithDetail("path", path)
}
