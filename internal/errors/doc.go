// Package errors provides typed errors with exit codes for scon.
//
// SconError wraps an error with an exit code:
//
//	type SconError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess            = 0  // Success
//	ExitGeneralError       = 1  // General and validation errors
//	ExitContainerNotFound  = 2  // Stateful container or runtime instance missing
//	ExitAlreadyExists      = 3  // Duplicate stateful container name
//	ExitRuntimeUnavailable = 4  // docker/podman cannot be run
//	ExitContainerFailed    = 5  // A runtime command failed
//	ExitConfigError        = 6  // Invalid or unreadable settings
//	ExitConflict           = 7  // Live runtime state disagrees with the registry
//	ExitStorageError       = 8  // Registry or settings could not be written
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
