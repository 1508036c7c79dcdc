// Package config provides the state directory layout and the persisted
// operator settings for scon.
//
// # Files
//
// All state lives in one directory (the current directory unless --state-dir
// is given):
//
//   - stateful_containers.json: the registry (see package registry)
//   - scon_config.json: operator Settings
//   - scon_events.jsonl: audit trail (see package audit)
//   - .scon.lock: flock target serialising registry updates
//
// # Settings
//
//	type Settings struct {
//	    UseSudo          bool         // prefix runtime commands with sudo
//	    ContainerRuntime runtime.Type // "docker" or "podman"
//	}
//
// SettingsStore.Load writes DefaultSettings when the file is missing.
// SettingsStore.Set validates the key and value and writes nothing on error.
package config
