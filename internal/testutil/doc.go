// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// NewTestEnv builds an app.App over a temporary state directory and a
// runtime.MockRuntime and installs it as app.Default for the duration of
// the test:
//
//	env := testutil.NewTestEnv(t)
//	env.AddContainer(registry.New("web", "nginx:latest"))
//	env.Runtime.AddContainer("web", "abc123", "nginx:latest", true)
//
// # Fixtures
//
// JSON fixtures are embedded using go:embed:
//
//	fixtures/legacy_registry.json   registry with zone-less timestamps
//	fixtures/corrupt_registry.json  truncated registry
//	fixtures/valid_settings.json
//	fixtures/invalid_settings.json
//
// Raw access for custom parsing:
//
//	data, err := testutil.LoadFixture("legacy_registry.json")
package testutil
