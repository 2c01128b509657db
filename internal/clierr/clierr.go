// Package clierr defines structured errors with machine-readable codes
// shared by the CLI commands and the terminal UI.
package clierr

import "fmt"

// Error codes.
const (
	DuplicateTask = "DUPLICATE_TASK"
	TaskNotFound  = "TASK_NOT_FOUND"
	AmbiguousID   = "AMBIGUOUS_ID"
	InvalidInput  = "INVALID_INPUT"
	InvalidFilter = "INVALID_FILTER"
	InvalidConfig = "INVALID_CONFIG"
	ConfigExists  = "CONFIG_EXISTS"
	StorageError  = "STORAGE_ERROR"
	InternalError = "INTERNAL_ERROR"
)

// Error is a CLI error carrying a code and optional details for JSON output.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// ExitCode returns 2 for internal errors and 1 for everything else.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// WithDetails attaches details and returns the same error for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// New creates an Error with the given code and message.
func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// SilentError signals an exit code without printing anything.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}
