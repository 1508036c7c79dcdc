// Package runtime provides the container runtime adapter for scon.
//
// Supported runtimes:
//   - docker: DockerRuntime, driving the docker CLI
//   - podman: PodmanRuntime, driving the podman CLI
//
// The runtime is chosen by the container_runtime setting and constructed
// with New. Both implementations share one CLI core; they differ in how an
// exact-name "ps --filter" is spelled.
//
// # Runtime Interface
//
//   - Version: availability probe (see Probe and IsAvailable)
//   - Run, Stop: instance lifecycle
//   - RunningID, AnyID: instance queries by name
//   - Commit, RemoveImage: snapshot images
//   - Rename: frees a name after a stop
//
// Every command is optionally prefixed with sudo and may be bounded by a
// per-command timeout. A non-zero exit or launch failure is always an error.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to create an in-memory engine that can
// be seeded with instances, have errors injected per method, and be used to
// verify calls.
package runtime
