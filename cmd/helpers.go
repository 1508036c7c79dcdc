package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
)

// manager returns the lifecycle manager for the default application.
func manager() (*lifecycle.Manager, error) {
	return app.Default.Manager()
}

// printConflictHints shows how to deal with a runtime instance that holds
// the name, when err is a conflict.
func printConflictHints(mgr *lifecycle.Manager, name string, err error) {
	if errors.GetExitCode(err) != errors.ExitConflict {
		return
	}
	for _, hint := range lifecycle.ConflictHints(mgr.Runtime(), name) {
		logInfo("%s", hint)
	}
}

// commandContext returns the context runtime commands run under.
func commandContext() context.Context {
	return context.Background()
}

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
