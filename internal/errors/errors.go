package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scon
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitContainerNotFound  = 2
	ExitAlreadyExists      = 3
	ExitRuntimeUnavailable = 4
	ExitContainerFailed    = 5
	ExitConfigError        = 6
	ExitConflict           = 7
	ExitStorageError       = 8
)

// SconError is the base error type for scon
type SconError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SconError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SconError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SconError) ExitCode() int {
	return e.Code
}

// New creates a new SconError
func New(code int, message string) *SconError {
	return &SconError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SconError
func Wrap(code int, message string, cause error) *SconError {
	return &SconError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ContainerNotFound returns an error for an unregistered stateful container
func ContainerNotFound(name string) *SconError {
	return New(ExitContainerNotFound, fmt.Sprintf("stateful container not found: %s", name))
}

// NoSuchInstance returns an error when the runtime has no instance for a registered container
func NoSuchInstance(name string) *SconError {
	return New(ExitContainerNotFound, fmt.Sprintf("no such container: %s", name))
}

// AlreadyExists returns an error for a duplicate stateful container name
func AlreadyExists(name string) *SconError {
	return New(ExitAlreadyExists, fmt.Sprintf("a stateful container with the name %q already exists", name))
}

// RuntimeUnavailable returns an error when the container runtime cannot be used
func RuntimeUnavailable(runtime string, cause error) *SconError {
	return Wrap(ExitRuntimeUnavailable, fmt.Sprintf("%s is not available on this system; ensure it is installed and try again", runtime), cause)
}

// ContainerFailed returns an error for runtime operations
func ContainerFailed(op string, cause error) *SconError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SconError {
	return Wrap(ExitConfigError, message, cause)
}

// Conflict returns an error when the live runtime state disagrees with the registry
func Conflict(message string) *SconError {
	return New(ExitConflict, message)
}

// StillRunning returns an error when an operation requires a stopped container
func StillRunning(name string) *SconError {
	return New(ExitConflict, fmt.Sprintf("container %s is running; stop it first", name))
}

// NotRunning returns an error when an operation requires a running container
func NotRunning(name string) *SconError {
	return New(ExitGeneralError, fmt.Sprintf("container %s is not running", name))
}

// StorageError returns an error for persistence failures
func StorageError(op string, cause error) *SconError {
	return Wrap(ExitStorageError, fmt.Sprintf("failed to %s", op), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *SconError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var sconErr *SconError
	if errors.As(err, &sconErr) {
		return sconErr.ExitCode()
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
