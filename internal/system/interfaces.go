// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"fmt"
	"strings"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Execute runs a command to completion and returns its standard output.
	// A launch failure or non-zero exit is returned as an *ExecError.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecError describes a command that could not be run or exited non-zero.
type ExecError struct {
	Name     string
	ExitCode int // -1 when the process never started
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Name, e.Err, stderr)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}
