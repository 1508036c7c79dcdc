package config

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	RegistryFileName = "stateful_containers.json"
	SettingsFileName = "scon_config.json"
	EventsFileName   = "scon_events.jsonl"
	LockFileName     = ".scon.lock"

	DefaultStateDir = "."
)

// Paths holds the locations of the files scon persists.
type Paths struct {
	StateDir     string
	RegistryFile string
	SettingsFile string
	EventsFile   string
	LockFile     string
}

// NewPaths resolves the state files inside stateDir. An empty stateDir means
// the current working directory.
func NewPaths(stateDir string) (*Paths, error) {
	if stateDir == "" {
		stateDir = DefaultStateDir
	}

	absDir, err := filepath.Abs(stateDir)
	if err != nil {
		return nil, fmt.Errorf("invalid state directory %q: %w", stateDir, err)
	}

	p := &Paths{StateDir: absDir}
	for _, f := range []struct {
		dst  *string
		name string
	}{
		{&p.RegistryFile, RegistryFileName},
		{&p.SettingsFile, SettingsFileName},
		{&p.EventsFile, EventsFileName},
		{&p.LockFile, LockFileName},
	} {
		joined, err := securejoin.SecureJoin(absDir, f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s in %s: %w", f.name, absDir, err)
		}
		*f.dst = joined
	}

	return p, nil
}

// DefaultPaths returns the paths for the current working directory.
func DefaultPaths() *Paths {
	p, err := NewPaths(DefaultStateDir)
	if err != nil {
		return &Paths{
			StateDir:     DefaultStateDir,
			RegistryFile: RegistryFileName,
			SettingsFile: SettingsFileName,
			EventsFile:   EventsFileName,
			LockFile:     LockFileName,
		}
	}
	return p
}
