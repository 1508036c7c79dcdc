// Package registry holds the stateful container model and its persistence.
//
// A StatefulContainer maps a name to a base image and an append-only
// history. Each start appends an entry for the new runtime instance; each
// stop or snapshot appends an entry for the committed image. Snapshot tags
// follow one rule, evaluated before the entry is appended:
//
//	<name>:v<len(history)+1>
//
// The count includes every entry, start and commit alike, so a
// create/start/stop sequence commits "<name>:v2" and the next cycle "<name>:v4".
//
// FileStore keeps the registry as a JSON array in stateful_containers.json.
// Saves go through a temporary file and rename, and Lock takes an flock on
// a sibling lock file so that concurrent invocations do not lose updates.
package registry
