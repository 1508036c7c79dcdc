// Package runtime defines the container runtime adapter for scon.
// Each supported engine (docker, podman) is driven through its CLI, and a
// mock implementation backs the lifecycle tests.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

// Type identifies which container runtime binary to drive
type Type string

const (
	TypeDocker Type = "docker"
	TypePodman Type = "podman"
)

// Types lists the supported runtimes in preference order.
var Types = []Type{TypeDocker, TypePodman}

// ParseType validates a runtime name.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown container runtime %q (must be docker or podman)", s)
}

// Runtime is the set of engine capabilities the lifecycle needs.
// Every call blocks until the underlying command exits.
type Runtime interface {
	// Name returns the runtime identifier (e.g., "docker", "podman")
	Name() string

	// Version probes the runtime binary.
	Version(ctx context.Context) (string, error)

	// Run starts a detached, idle instance called name from image and
	// returns the runtime-assigned id.
	Run(ctx context.Context, image, name string) (string, error)

	// RunningID returns the id of the running instance called name, or ""
	// when none is running.
	RunningID(ctx context.Context, name string) (string, error)

	// AnyID returns the id of the instance called name in any state, or "".
	AnyID(ctx context.Context, name string) (string, error)

	// Stop gracefully stops the named instance.
	Stop(ctx context.Context, name string) error

	// Commit snapshots the named instance's filesystem into tag.
	Commit(ctx context.Context, name, tag string) error

	// Rename renames an instance.
	Rename(ctx context.Context, name, newName string) error

	// RemoveContainer force-removes an instance by name or id. An instance
	// that no longer exists is not an error.
	RemoveContainer(ctx context.Context, ref string) error

	// RemoveImage removes an image reference.
	RemoveImage(ctx context.Context, ref string) error
}

// Options configures a CLI-backed runtime.
type Options struct {
	// UseSudo prefixes every command with the elevation wrapper.
	UseSudo bool

	// SudoCommand is the elevation wrapper (default "sudo").
	SudoCommand string

	// Executor runs the commands (default system.DefaultExecutor()).
	Executor system.CommandExecutor

	// Timeout bounds each command; zero means no limit.
	Timeout time.Duration
}

// New creates the runtime for t.
func New(t Type, opts Options) (Runtime, error) {
	switch t {
	case TypeDocker:
		return NewDockerRuntime(opts), nil
	case TypePodman:
		return NewPodmanRuntime(opts), nil
	default:
		return nil, fmt.Errorf("unknown runtime type: %s", t)
	}
}

// CommandRenderer is implemented by runtimes that can show the operator the
// exact command line they would run, e.g. for conflict hints.
type CommandRenderer interface {
	CommandLine(args ...string) string
}
