// Package logging provides logging utilities for chartlit.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("parsed fixture", "path", path, "kind", kind)
//	logging.Warn("cache disabled", "size", size)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Watching %s for changes", dir)
//	logging.UserSuccess("%d fixtures passed", n)
//	logging.UserWarning("%s: unknown option %q", path, key)
//	logging.UserError("%s: %v", name, err)
//
// Output destinations (replaceable with SetUserOutput):
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
