// Package app provides the application context for scon.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // State file paths
//	    Runtime  runtime.Runtime        // Optional runtime override
//	    Executor system.CommandExecutor // Runs runtime commands
//	    Timeout  time.Duration          // Per-command timeout
//	    Now      func() time.Time       // Clock for history entries
//	}
//
// Without a runtime override, LoadRuntime reads scon_config.json and builds
// the docker or podman adapter it selects.
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithPaths(paths), app.WithTimeout(timeout))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithRuntime(mockRuntime),
//	)
//
//	mgr, err := a.Manager()
package app
