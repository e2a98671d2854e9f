package errors

import (
	"errors"
	"fmt"
)

// Exit codes for chartlit
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitParseError      = 2
	ExitValidationError = 3
	ExitFixtureFailure  = 4
	ExitConfigError     = 5
	ExitFixtureNotFound = 6
	ExitDiffToolError   = 7
)

// ChartlitError is the base error type for chartlit
type ChartlitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ChartlitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ChartlitError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ChartlitError) ExitCode() int {
	return e.Code
}

// New creates a new ChartlitError
func New(code int, message string) *ChartlitError {
	return &ChartlitError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ChartlitError
func Wrap(code int, message string, cause error) *ChartlitError {
	return &ChartlitError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ParseError returns an error for input that could not be parsed
func ParseError(file string, cause error) *ChartlitError {
	return Wrap(ExitParseError, fmt.Sprintf("failed to parse %s", file), cause)
}

// ValidationFailed returns an error for input that failed validation
func ValidationFailed(file string, cause error) *ChartlitError {
	return Wrap(ExitValidationError, fmt.Sprintf("%s is invalid", file), cause)
}

// FixturesFailed returns an error for a corpus run with failures
func FixturesFailed(failed int) *ChartlitError {
	noun := "fixtures"
	if failed == 1 {
		noun = "fixture"
	}
	return New(ExitFixtureFailure, fmt.Sprintf("%d %s failed", failed, noun))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ChartlitError {
	return Wrap(ExitConfigError, message, cause)
}

// FixtureNotFound returns an error for a missing fixture
func FixtureNotFound(name string) *ChartlitError {
	return New(ExitFixtureNotFound, fmt.Sprintf("fixture not found: %s", name))
}

// DiffToolError returns an error for a failing external diff command
func DiffToolError(message string, cause error) *ChartlitError {
	return Wrap(ExitDiffToolError, message, cause)
}

// UsageError returns an error for invalid command-line input
func UsageError(message string) *ChartlitError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var chartlitErr *ChartlitError
	if errors.As(err, &chartlitErr) {
		return chartlitErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
