package testutil

import (
	"embed"
	"encoding/json"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadRegistryFixture loads a registry fixture.
func LoadRegistryFixture(name string) (registry.Registry, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var reg registry.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadSettingsFixture loads a settings fixture.
func LoadSettingsFixture(name string) (*config.Settings, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var s config.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LegacyRegistry returns a registry written by an earlier scon release,
// with zone-less timestamps.
func LegacyRegistry() (registry.Registry, error) {
	return LoadRegistryFixture("legacy_registry.json")
}

// ValidSettings returns the valid settings fixture.
func ValidSettings() (*config.Settings, error) {
	return LoadSettingsFixture("valid_settings.json")
}

// InvalidSettings returns the invalid settings fixture.
func InvalidSettings() (*config.Settings, error) {
	return LoadSettingsFixture("invalid_settings.json")
}
