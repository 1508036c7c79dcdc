package runtime

import (
	"context"
	"os/exec"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
)

// Probe runs the runtime's version check and returns why it failed, if it did.
func Probe(ctx context.Context, rt Runtime) error {
	version, err := rt.Version(ctx)
	if err != nil {
		logging.Debug("runtime probe failed", "runtime", rt.Name(), "error", err)
		return err
	}
	logging.Debug("runtime available", "runtime", rt.Name(), "version", version)
	return nil
}

// IsAvailable reports whether the runtime binary launches and exits successfully.
func IsAvailable(ctx context.Context, rt Runtime) bool {
	return Probe(ctx, rt) == nil
}

// Installed returns the supported runtimes found in PATH.
func Installed() []Type {
	var installed []Type
	for _, t := range Types {
		if _, err := exec.LookPath(string(t)); err == nil {
			installed = append(installed, t)
		}
	}
	return installed
}
