package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

const (
	envEnabled = "SCON_INTEGRATION_TESTS"
	envRuntime = "SCON_RUNTIME"
	envSudo    = "SCON_USE_SUDO"
	envImage   = "SCON_TEST_IMAGE"

	defaultImage = "alpine:3.20"
)

// Enabled reports whether integration tests were requested.
func Enabled() bool {
	return os.Getenv(envEnabled) == "1"
}

// TestHarness provides a scratch state directory and a real runtime.
type TestHarness struct {
	t     *testing.T
	rtype runtime.Type
	sudo  bool
	paths *config.Paths
	app   *app.App
	rt    runtime.Runtime
	names []string
}

// NewHarness creates a new test harness.
// It skips the test unless integration tests are enabled and the
// selected engine answers.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	if !Enabled() {
		t.Skipf("integration tests disabled (set %s=1 to enable)", envEnabled)
	}

	rtype := runtime.TypeDocker
	if v := os.Getenv(envRuntime); v != "" {
		parsed, err := runtime.ParseType(v)
		if err != nil {
			t.Fatalf("%s: %v", envRuntime, err)
		}
		rtype = parsed
	}
	sudo := os.Getenv(envSudo) == "1"

	paths, err := config.NewPaths(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("Failed to resolve paths: %v", err)
	}

	rt, err := runtime.New(rtype, runtime.Options{UseSudo: sudo, Timeout: 2 * time.Minute})
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := runtime.Probe(ctx, rt); err != nil {
		t.Skipf("%s not available: %v", rtype, err)
	}

	h := &TestHarness{
		t:     t,
		rtype: rtype,
		sudo:  sudo,
		paths: paths,
		app:   app.New(app.WithPaths(paths), app.WithRuntime(rt)),
		rt:    rt,
	}
	t.Cleanup(h.Cleanup)

	return h
}

// Image returns the base image used by the tests.
func (h *TestHarness) Image() string {
	if v := os.Getenv(envImage); v != "" {
		return v
	}
	return defaultImage
}

// Runtime returns the container runtime.
func (h *TestHarness) Runtime() runtime.Runtime {
	return h.rt
}

// Paths returns the scratch state paths.
func (h *TestHarness) Paths() *config.Paths {
	return h.paths
}

// Manager returns a lifecycle manager over the scratch state directory.
func (h *TestHarness) Manager() *lifecycle.Manager {
	h.t.Helper()

	mgr, err := h.app.Manager()
	if err != nil {
		h.t.Fatalf("Failed to create manager: %v", err)
	}
	return mgr
}

// Name returns a container name unique to this run and schedules its
// instances and snapshot images for removal.
func (h *TestHarness) Name(base string) string {
	name := fmt.Sprintf("scon-it-%s-%d", base, time.Now().UnixNano())
	h.names = append(h.names, name)
	return name
}

// Cleanup force-removes every instance and snapshot image the test left.
func (h *TestHarness) Cleanup() {
	ctx := context.Background()
	reg := h.app.Store().Load()

	for _, name := range h.names {
		// Matches the live instance and the renamed stopped ones.
		out := h.engine(ctx, "ps", "-aq", "--filter", "name="+name)
		for _, id := range strings.Fields(string(out)) {
			h.engine(ctx, "rm", "-f", id)
		}

		c, ok := reg.Find(name)
		if !ok {
			continue
		}
		for _, tag := range c.SnapshotTags() {
			h.engine(ctx, "rmi", "-f", tag)
		}
	}
}

// engine runs a raw engine command. Failures are logged, not fatal.
func (h *TestHarness) engine(ctx context.Context, args ...string) []byte {
	name := string(h.rtype)
	if h.sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	out, err := system.DefaultExecutor().Execute(ctx, name, args...)
	if err != nil {
		h.t.Logf("cleanup: %s %v: %v", name, args, err)
		return nil
	}
	return out
}
