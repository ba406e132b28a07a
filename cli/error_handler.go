package cli

import (
	"fmt"
	"os"

	"github.com/hardcoreai/shell/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a hardcore.yml in your project or ~/.config/hardcore/.\n")
		return err

	case errors.ErrCodeBackendUnreachable:
		if hcErr, ok := err.(*errors.HardcoreError); ok {
			fmt.Fprintf(os.Stderr, "❌ Cannot reach the backend at %s\n", hcErr.Details["endpoint"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Cannot reach the backend\n")
		}
		fmt.Fprintf(os.Stderr, "Make sure the hardcore backend is running, or set backend.url in hardcore.yml\n")
		return err

	case errors.ErrCodeCommandInFlight:
		if hcErr, ok := err.(*errors.HardcoreError); ok {
			fmt.Fprintf(os.Stderr, "❌ A %s command is already running. Wait for it to finish.\n", hcErr.Details["kind"])
		}
		return err

	case errors.ErrCodeNoDevices:
		fmt.Fprintf(os.Stderr, "❌ No boards detected.\n")
		fmt.Fprintf(os.Stderr, "Connect your board over USB and check that serial drivers are installed.\n")
		return err

	case errors.ErrCodeFlashFailed:
		if hcErr, ok := err.(*errors.HardcoreError); ok {
			fmt.Fprintf(os.Stderr, "❌ Flash to port %v failed: %s\n", hcErr.Details["port"], hcErr.Message)
		}
		fmt.Fprintf(os.Stderr, "Check the cable, close any open serial monitors, and try again.\n")
		return err

	case errors.ErrCodeSchemaValidation:
		if hcErr, ok := err.(*errors.HardcoreError); ok {
			fmt.Fprintf(os.Stderr, "❌ Peripheral configuration %v is invalid:\n%v\n", hcErr.Details["path"], hcErr.Cause)
		}
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if hcErr, ok := err.(*errors.HardcoreError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hcErr.ToJSON())
			}
		}
		return err
	}
}
