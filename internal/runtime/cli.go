package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

const defaultSudoCommand = "sudo"

// cliRuntime drives a docker-compatible CLI. The engine-specific types
// embed it and supply the name filter syntax.
type cliRuntime struct {
	command     string
	useSudo     bool
	sudoCommand string
	executor    system.CommandExecutor
	timeout     time.Duration

	// nameFilter renders an exact-match "ps --filter name=..." value.
	nameFilter func(name string) string
}

func newCLIRuntime(command string, opts Options, nameFilter func(string) string) cliRuntime {
	r := cliRuntime{
		command:     command,
		useSudo:     opts.UseSudo,
		sudoCommand: opts.SudoCommand,
		executor:    opts.Executor,
		timeout:     opts.Timeout,
		nameFilter:  nameFilter,
	}
	if r.sudoCommand == "" {
		r.sudoCommand = defaultSudoCommand
	}
	if r.executor == nil {
		r.executor = system.DefaultExecutor()
	}
	return r
}

// Name returns the runtime identifier
func (r *cliRuntime) Name() string {
	return r.command
}

// argv builds the full command line, including the elevation wrapper.
func (r *cliRuntime) argv(args ...string) []string {
	argv := make([]string, 0, len(args)+2)
	if r.useSudo {
		argv = append(argv, r.sudoCommand)
	}
	argv = append(argv, r.command)
	return append(argv, args...)
}

// CommandLine renders the command that args would run, shell-quoted.
func (r *cliRuntime) CommandLine(args ...string) string {
	return shellquote.Join(r.argv(args...)...)
}

// runCmd executes a runtime command and returns its stdout
func (r *cliRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	argv := r.argv(args...)
	line := shellquote.Join(argv...)
	logging.Debug("running runtime command", "command", line)

	out, err := r.executor.Execute(ctx, argv[0], argv[1:]...)
	if err != nil {
		return "", fmt.Errorf("`%s` failed: %w", line, err)
	}

	return string(out), nil
}

// Version probes the runtime binary
func (r *cliRuntime) Version(ctx context.Context) (string, error) {
	out, err := r.runCmd(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Run starts a detached instance that idles forever
func (r *cliRuntime) Run(ctx context.Context, image, name string) (string, error) {
	logging.Debug("running container", "name", name, "image", image, "runtime", r.command)

	out, err := r.runCmd(ctx, "run", "-d", "--name", name, image, "sleep", "infinity")
	if err != nil {
		return "", err
	}

	id := lastLine(out)
	if id == "" {
		return "", fmt.Errorf("%s run returned no container id", r.command)
	}
	return id, nil
}

// RunningID returns the id of the running instance called name
func (r *cliRuntime) RunningID(ctx context.Context, name string) (string, error) {
	out, err := r.runCmd(ctx, "ps", "-q", "-f", "name="+r.nameFilter(name))
	if err != nil {
		return "", err
	}
	return firstLine(out), nil
}

// AnyID returns the id of the instance called name, running or stopped
func (r *cliRuntime) AnyID(ctx context.Context, name string) (string, error) {
	out, err := r.runCmd(ctx, "ps", "-a", "--filter", "name="+r.nameFilter(name), "--format", "{{.ID}}")
	if err != nil {
		return "", err
	}
	return firstLine(out), nil
}

// Stop stops a running container
func (r *cliRuntime) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping container", "container", name)
	_, err := r.runCmd(ctx, "stop", name)
	return err
}

// Commit snapshots a container into a new image
func (r *cliRuntime) Commit(ctx context.Context, name, tag string) error {
	logging.Debug("committing container", "container", name, "tag", tag)
	_, err := r.runCmd(ctx, "commit", name, tag)
	return err
}

// Rename renames a container
func (r *cliRuntime) Rename(ctx context.Context, name, newName string) error {
	logging.Debug("renaming container", "container", name, "to", newName)
	_, err := r.runCmd(ctx, "rename", name, newName)
	return err
}

// RemoveContainer force-removes a container, running or stopped
func (r *cliRuntime) RemoveContainer(ctx context.Context, ref string) error {
	logging.Debug("removing container", "container", ref)
	_, err := r.runCmd(ctx, "rm", "-f", ref)
	if err != nil && isNoSuchContainer(err) {
		logging.Debug("container already gone", "container", ref)
		return nil
	}
	return err
}

// RemoveImage removes an image
func (r *cliRuntime) RemoveImage(ctx context.Context, ref string) error {
	logging.Debug("removing image", "image", ref)
	_, err := r.runCmd(ctx, "rmi", ref)
	return err
}

// isNoSuchContainer matches the "not found" stderr of both docker
// ("No such container: x") and podman ("... : no such container").
func isNoSuchContainer(err error) bool {
	var execErr *system.ExecError
	if !errors.As(err, &execErr) {
		return false
	}
	return strings.Contains(strings.ToLower(execErr.Stderr), "no such container")
}

func firstLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
