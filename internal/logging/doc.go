// Package logging provides logging utilities for scon.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("running container", "name", name, "image", image)
//	logging.Warn("registry unreadable, treating as empty", "path", path)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Stopping container %s...", name)
//	logging.UserSuccess("Stateful container %s created", name)
//	logging.UserWarning("Failed to remove image %s", ref)
//	logging.UserError("%v", err)
//
// Output destinations:
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
