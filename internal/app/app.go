// Package app provides the application context for scon.
// It allows dependency injection for testing.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured state file paths
	Paths *config.Paths

	// Runtime overrides the runtime selected by the settings file
	Runtime runtime.Runtime

	// Executor runs runtime commands (default system.DefaultExecutor())
	Executor system.CommandExecutor

	// Timeout bounds each runtime command; zero means no limit
	Timeout time.Duration

	// Now is the clock used for history entries
	Now func() time.Time
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithExecutor sets the command executor for CLI runtimes
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithTimeout sets the per-command runtime timeout
func WithTimeout(d time.Duration) Option {
	return func(a *App) {
		a.Timeout = d
	}
}

// WithClock sets the clock used for history entries
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.Now = now
	}
}

// New creates a new App with the given options.
// If no runtime is provided via WithRuntime, it is built from the
// settings file on first use.
func New(opts ...Option) *App {
	app := &App{
		Paths: config.DefaultPaths(),
		Now:   time.Now,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Settings returns the settings store
func (a *App) Settings() *config.SettingsStore {
	return config.NewSettingsStore(a.Paths.SettingsFile)
}

// Store returns the registry store
func (a *App) Store() registry.Store {
	return registry.NewFileStore(a.Paths.RegistryFile, a.Paths.LockFile)
}

// Audit returns the audit event logger
func (a *App) Audit() *audit.Logger {
	return audit.NewLogger(a.Paths.EventsFile)
}

// EnsureStateDir creates the state directory if needed
func (a *App) EnsureStateDir() error {
	if err := os.MkdirAll(a.Paths.StateDir, 0755); err != nil {
		return errors.StorageError(fmt.Sprintf("create state directory %s", a.Paths.StateDir), err)
	}
	return nil
}

// LoadRuntime returns the runtime override, or the runtime selected by the
// settings file.
func (a *App) LoadRuntime() (runtime.Runtime, error) {
	if a.Runtime != nil {
		return a.Runtime, nil
	}

	if err := a.EnsureStateDir(); err != nil {
		return nil, err
	}

	settings, err := a.Settings().Load()
	if err != nil {
		return nil, err
	}

	rt, err := runtime.New(settings.ContainerRuntime, runtime.Options{
		UseSudo:  settings.UseSudo,
		Executor: a.Executor,
		Timeout:  a.Timeout,
	})
	if err != nil {
		return nil, errors.ConfigError("failed to select container runtime", err)
	}

	logging.Debug("runtime selected", "runtime", rt.Name(), "use_sudo", settings.UseSudo)
	return rt, nil
}

// Manager returns a lifecycle manager wired to the registry, the runtime
// and the audit log.
func (a *App) Manager() (*lifecycle.Manager, error) {
	rt, err := a.LoadRuntime()
	if err != nil {
		return nil, err
	}
	if err := a.EnsureStateDir(); err != nil {
		return nil, err
	}

	now := a.Now
	if now == nil {
		now = time.Now
	}

	return lifecycle.NewManager(a.Store(), rt,
		lifecycle.WithEvents(a.Audit()),
		lifecycle.WithClock(now),
	), nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
