// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
)

// FixedTime is the clock value used by test environments.
var FixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	Runtime *runtime.MockRuntime
	App     *app.App
	cleanup func()
}

// NewTestEnv creates a test environment with a temporary state directory
// and a mock runtime, and installs it as app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths, err := config.NewPaths(filepath.Join(tmpDir, "state"))
	if err != nil {
		t.Fatalf("Failed to resolve paths: %v", err)
	}
	if err := os.MkdirAll(paths.StateDir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", paths.StateDir, err)
	}

	mockRuntime := runtime.NewMockRuntime()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithRuntime(mockRuntime),
		app.WithClock(func() time.Time { return FixedTime }),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:       t,
		TmpDir:  tmpDir,
		Paths:   paths,
		Runtime: mockRuntime,
		App:     testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// AddContainer registers a stateful container in the test registry
func (e *TestEnv) AddContainer(c *registry.StatefulContainer) {
	e.T.Helper()

	store := e.App.Store()
	reg, err := store.Load().Add(c)
	if err != nil {
		e.T.Fatalf("Failed to add container: %v", err)
	}
	if err := store.Save(reg); err != nil {
		e.T.Fatalf("Failed to save registry: %v", err)
	}
}

// GetContainer loads a registered container, or nil
func (e *TestEnv) GetContainer(name string) *registry.StatefulContainer {
	e.T.Helper()

	c, ok := e.App.Store().Load().Find(name)
	if !ok {
		return nil
	}
	return c
}

// Registry loads the whole test registry
func (e *TestEnv) Registry() registry.Registry {
	return e.App.Store().Load()
}

// WriteFixture copies a fixture into the state directory under name
func (e *TestEnv) WriteFixture(fixture, name string) string {
	e.T.Helper()

	data, err := LoadFixture(fixture)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", fixture, err)
	}
	path := filepath.Join(e.Paths.StateDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.T.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}
