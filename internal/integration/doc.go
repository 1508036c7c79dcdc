// Package integration runs the stateful container lifecycle against a real
// container engine.
//
// The tests are skipped unless SCON_INTEGRATION_TESTS=1 is set. They need:
//   - a docker or podman binary in PATH (SCON_RUNTIME selects one, default docker)
//   - an engine the current user may talk to, or SCON_USE_SUDO=1
//   - an image with a sleep binary, SCON_TEST_IMAGE (default alpine:3.20)
//
// Run with: SCON_INTEGRATION_TESTS=1 go test -v ./internal/integration/...
package integration
