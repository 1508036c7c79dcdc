package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/moby/sys/atomicwriter"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
)

// Setting keys accepted by Set.
const (
	KeyUseSudo          = "use_sudo"
	KeyContainerRuntime = "container_runtime"
)

// Settings holds the operator preferences from scon_config.json.
type Settings struct {
	UseSudo          bool         `json:"use_sudo"`
	ContainerRuntime runtime.Type `json:"container_runtime"`
}

// DefaultSettings returns the settings written when none exist yet.
func DefaultSettings() *Settings {
	return &Settings{
		UseSudo:          false,
		ContainerRuntime: runtime.TypeDocker,
	}
}

// Validate checks that the Settings are valid.
func (s *Settings) Validate() error {
	if _, err := runtime.ParseType(string(s.ContainerRuntime)); err != nil {
		return err
	}
	return nil
}

// Set assigns value to key after validating both. s is unchanged on error.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyUseSudo:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid value for use_sudo %q: use 'true' or 'false'", value), nil)
		}
		s.UseSudo = b
	case KeyContainerRuntime:
		rt, err := runtime.ParseType(value)
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid value for container_runtime %q: use 'docker' or 'podman'", value), nil)
		}
		s.ContainerRuntime = rt
	default:
		return errors.ConfigError(fmt.Sprintf("invalid configuration key %q: use 'use_sudo' or 'container_runtime'", key), nil)
	}
	return nil
}

// Get returns the string form of key.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyUseSudo:
		return strconv.FormatBool(s.UseSudo), nil
	case KeyContainerRuntime:
		return string(s.ContainerRuntime), nil
	default:
		return "", errors.ConfigError(fmt.Sprintf("invalid configuration key %q: use 'use_sudo' or 'container_runtime'", key), nil)
	}
}

// SettingsStore persists Settings as a single JSON object.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a store backed by path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the backing file.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings. When the file does not exist the defaults are
// written immediately and returned.
func (s *SettingsStore) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		settings := DefaultSettings()
		logging.Debug("settings file missing, writing defaults", "path", s.path)
		if err := s.Save(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err != nil {
		return nil, errors.ConfigError("failed to read settings", err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse %s", s.path), err)
	}

	// Files written before container_runtime existed fall back to docker.
	if settings.ContainerRuntime == "" {
		settings.ContainerRuntime = runtime.TypeDocker
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid settings in %s", s.path), err)
	}

	return settings, nil
}

// Save overwrites the backing file with settings.
func (s *SettingsStore) Save(settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return errors.ConfigError("refusing to save invalid settings", err)
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return errors.StorageError("encode settings", err)
	}

	if err := atomicwriter.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return errors.StorageError("save settings", err)
	}
	return nil
}

// Set loads the settings, applies key=value and saves the result. Nothing is
// written when validation fails.
func (s *SettingsStore) Set(key, value string) (*Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return nil, err
	}

	if err := settings.Set(key, value); err != nil {
		return nil, err
	}

	if err := s.Save(settings); err != nil {
		return nil, err
	}

	logging.Debug("settings updated", "key", key, "value", value)
	return settings, nil
}
