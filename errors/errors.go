package errors

import (
	"fmt"
	"strings"
)

// ToolExitError terminates the tool with a message for the user. It marks
// failures that are understood and final: the message is printed without a
// stack trace and the process exits with ExitCode.
type ToolExitError struct {
	// Message is the user-facing description of what went wrong.
	Message string

	// Suggestion is an actionable hint for the user (optional).
	Suggestion string

	// ExitCode is the process exit code. Zero means 1.
	ExitCode int

	// Err is the underlying error (optional).
	Err error
}

func (e *ToolExitError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *ToolExitError) Unwrap() error {
	return e.Err
}

// ToolExit creates a ToolExitError with exit code 1.
func ToolExit(message string) error {
	return &ToolExitError{Message: message}
}

// ToolExitf creates a ToolExitError with a formatted message. The %w verb
// wraps an underlying error as usual.
func ToolExitf(format string, args ...any) error {
	wrapped := fmt.Errorf(format, args...)
	return &ToolExitError{Message: wrapped.Error(), Err: wrapped}
}
