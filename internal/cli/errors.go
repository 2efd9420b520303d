// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands in link2clash.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let the caller decide how to display errors
//   - Use structured error types for better error handling

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jeranaias/link2clash-tui/internal/config"
	"github.com/jeranaias/link2clash-tui/internal/convert"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitEngineError indicates the engine answered with a failure status
	ExitEngineError = 4
	// ExitNetworkError indicates the engine could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "convert", "config")
	Action  string // Action being performed (e.g., "lint", "init")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "file", "config key")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w in a consistent format.
//
// In JSON mode, outputs a structured JSON error envelope.
// In normal mode, displays "Error: <message>".
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		resp := NewJSONErrorResponse(command, err)
		resp.Details = errorDetails(err)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(resp)
		return
	}

	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("Error:"), err)
}

// errorDetails describes structured errors for JSON consumers.
func errorDetails(err error) map[string]interface{} {
	details := map[string]interface{}{}

	var cmdErr *CommandError
	var valErr *ValidationError
	var nfErr *NotFoundError
	var clientErr *convert.ClientError
	switch {
	case errors.As(err, &valErr):
		details["error_type"] = "validation_error"
		details["field"] = valErr.Field
		details["value"] = valErr.Value
	case errors.As(err, &clientErr):
		details["error_type"] = "client_error"
		details["kind"] = clientErr.Type.String()
		if clientErr.StatusCode != 0 {
			details["status_code"] = clientErr.StatusCode
		}
	case errors.As(err, &nfErr):
		details["error_type"] = "not_found_error"
		details["resource"] = nfErr.Resource
		details["id"] = nfErr.ID
	case errors.As(err, &cmdErr):
		details["error_type"] = "command_error"
		details["action"] = cmdErr.Action
	default:
		details["error_type"] = "generic_error"
	}
	return details
}

// HandleErrorAndExit displays an error on stderr and exits with the code
// GetExitCode assigns it.
func HandleErrorAndExit(command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	out := os.Stderr
	if jsonMode {
		out = os.Stdout
	}
	DisplayError(out, command, err, jsonMode)
	os.Exit(GetExitCode(err))
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var configErrs config.ValidateErrors
	if errors.As(err, &configErrs) {
		return ExitConfigError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFoundError
	}

	if convert.IsEngine(err) {
		return ExitEngineError
	}

	if isTimeout(err) {
		return ExitTimeoutError
	}

	if convert.IsTransport(err) {
		return ExitNetworkError
	}

	return ExitGeneralError
}

func isTimeout(err error) bool {
	if errors.Is(err, convert.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
