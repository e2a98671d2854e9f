// Package errors provides typed errors with exit codes for chartlit.
//
// # Error Types
//
// ChartlitError wraps an error with the exit code the CLI terminates with:
//
//	type ChartlitError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitParseError      = 2  // Input could not be parsed
//	ExitValidationError = 3  // Input parsed but failed validation
//	ExitFixtureFailure  = 4  // A corpus run had failing fixtures
//	ExitConfigError     = 5  // Configuration error
//	ExitFixtureNotFound = 6  // Named fixture does not exist
//	ExitDiffToolError   = 7  // External diff tool failed
//
// # Error Constructors
//
//	errors.ParseError("01.js", err)
//	errors.ValidationFailed("error-01.js", err)
//	errors.FixturesFailed(3)
//	errors.FixtureNotFound("shared_options")
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
