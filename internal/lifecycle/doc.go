// Package lifecycle implements the stateful container state machine.
//
// A registered container moves through
//
//	registered -> running -> stopped (snapshot committed) -> running -> ...
//
// Start runs an instance called <name> and records it in the history. Stop
// stops that instance, commits it to <name>:v<len(history)+1>, renames the
// stopped instance out of the way and records the snapshot. Delete removes
// the registry entry and, depending on the option, the committed snapshots.
//
// Every mutation holds the store lock from load to save, and every runtime
// failure aborts the operation before the registry is written.
package lifecycle
