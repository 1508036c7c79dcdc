package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	paths, err := config.NewPaths(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewPaths: %v", err)
	}
	return paths
}

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Paths == nil {
		t.Error("Paths should not be nil")
	}
	if app.Now == nil {
		t.Error("Now should default to time.Now")
	}
}

func TestNew_Options(t *testing.T) {
	paths := testPaths(t)
	mockRuntime := runtime.NewMockRuntime()
	exec := system.NewMockExecutor()
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	app := New(
		WithPaths(paths),
		WithRuntime(mockRuntime),
		WithExecutor(exec),
		WithTimeout(time.Minute),
		WithClock(func() time.Time { return fixed }),
	)

	if app.Paths != paths {
		t.Error("Paths not set correctly")
	}
	if app.Runtime != mockRuntime {
		t.Error("Runtime not set correctly")
	}
	if app.Executor != exec {
		t.Error("Executor not set correctly")
	}
	if app.Timeout != time.Minute {
		t.Error("Timeout not set correctly")
	}
	if !app.Now().Equal(fixed) {
		t.Error("Clock not set correctly")
	}
}

func TestLoadRuntime_Override(t *testing.T) {
	mockRuntime := runtime.NewMockRuntime()
	app := New(WithPaths(testPaths(t)), WithRuntime(mockRuntime))

	rt, err := app.LoadRuntime()
	if err != nil {
		t.Fatalf("LoadRuntime error: %v", err)
	}
	if rt != mockRuntime {
		t.Error("LoadRuntime should return the override")
	}
}

func TestLoadRuntime_FromSettings(t *testing.T) {
	paths := testPaths(t)
	exec := system.NewMockExecutor()
	app := New(WithPaths(paths), WithExecutor(exec))

	rt, err := app.LoadRuntime()
	if err != nil {
		t.Fatalf("LoadRuntime error: %v", err)
	}
	if rt.Name() != "docker" {
		t.Errorf("default runtime = %q, want docker", rt.Name())
	}
	if _, err := os.Stat(paths.SettingsFile); err != nil {
		t.Errorf("settings file should be created with defaults: %v", err)
	}

	if _, err := app.Settings().Set(config.KeyContainerRuntime, "podman"); err != nil {
		t.Fatalf("Set runtime: %v", err)
	}
	if _, err := app.Settings().Set(config.KeyUseSudo, "true"); err != nil {
		t.Fatalf("Set use_sudo: %v", err)
	}

	rt, err = app.LoadRuntime()
	if err != nil {
		t.Fatalf("LoadRuntime error: %v", err)
	}
	if rt.Name() != "podman" {
		t.Errorf("runtime = %q, want podman", rt.Name())
	}

	if err := rt.Stop(context.Background(), "web"); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	last, _ := exec.LastCommand()
	if last.Line() != "sudo podman stop web" {
		t.Errorf("command = %q, want %q", last.Line(), "sudo podman stop web")
	}
}

func TestLoadRuntime_BadSettings(t *testing.T) {
	paths := testPaths(t)
	if err := os.MkdirAll(paths.StateDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.SettingsFile, []byte(`{"use_sudo": false, "container_runtime": "lxc"}`), 0644); err != nil {
		t.Fatal(err)
	}

	app := New(WithPaths(paths), WithExecutor(system.NewMockExecutor()))
	if _, err := app.LoadRuntime(); err == nil {
		t.Error("LoadRuntime should reject an unknown runtime")
	}
}

func TestManager(t *testing.T) {
	paths := testPaths(t)
	mockRuntime := runtime.NewMockRuntime()
	app := New(WithPaths(paths), WithRuntime(mockRuntime))

	mgr, err := app.Manager()
	if err != nil {
		t.Fatalf("Manager error: %v", err)
	}

	if _, err := mgr.Create(context.Background(), "web", "nginx:latest"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := os.Stat(paths.RegistryFile); err != nil {
		t.Errorf("registry file should exist: %v", err)
	}
	events, err := app.Audit().Events("web")
	if err != nil {
		t.Fatalf("Events error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer SetDefault(original)

	custom := New(WithPaths(testPaths(t)))
	SetDefault(custom)
	if Default != custom {
		t.Error("SetDefault did not set the default app")
	}

	ResetDefault()
	if Default == custom {
		t.Error("ResetDefault should replace the custom app")
	}
}
