package lifecycle

import (
	"fmt"
	"strings"
)

// DeleteOption selects what delete removes besides the registry entry.
type DeleteOption int

const (
	// DeleteEntryOnly removes the registry entry and leaves every image.
	DeleteEntryOnly DeleteOption = iota + 1

	// DeleteAllSnapshots also removes every committed snapshot image.
	DeleteAllSnapshots

	// DeleteKeepLatestSnapshot removes every snapshot image except the newest.
	DeleteKeepLatestSnapshot
)

var deleteOptionNames = map[DeleteOption]string{
	DeleteEntryOnly:          "entry-only",
	DeleteAllSnapshots:       "all-snapshots",
	DeleteKeepLatestSnapshot: "keep-latest-snapshot",
}

// DeleteOptions lists the options in the order they are offered.
var DeleteOptions = []DeleteOption{DeleteEntryOnly, DeleteAllSnapshots, DeleteKeepLatestSnapshot}

// ParseDeleteOption maps a command-line spelling to its option.
func ParseDeleteOption(s string) (DeleteOption, error) {
	for _, opt := range DeleteOptions {
		if deleteOptionNames[opt] == s {
			return opt, nil
		}
	}
	names := make([]string, len(DeleteOptions))
	for i, opt := range DeleteOptions {
		names[i] = opt.String()
	}
	return 0, fmt.Errorf("invalid delete option %q: use one of %s", s, strings.Join(names, ", "))
}

func (o DeleteOption) String() string {
	if name, ok := deleteOptionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("DeleteOption(%d)", int(o))
}

// Valid reports whether o is one of the declared options.
func (o DeleteOption) Valid() bool {
	_, ok := deleteOptionNames[o]
	return ok
}

// Description is the one-line explanation shown by the interactive picker.
func (o DeleteOption) Description() string {
	switch o {
	case DeleteEntryOnly:
		return "Remove the registry entry; keep every snapshot image"
	case DeleteAllSnapshots:
		return "Remove the registry entry and every snapshot image"
	case DeleteKeepLatestSnapshot:
		return "Remove the registry entry and all but the newest snapshot image"
	default:
		return ""
	}
}

// StartOptions configures Start.
type StartOptions struct {
	// FromLatestSnapshot runs the newest committed snapshot instead of the
	// base image. Without a snapshot it falls back to the base image.
	FromLatestSnapshot bool
}

// StartResult describes the outcome of Start.
type StartResult struct {
	Name        string
	ContainerID string
	Image       string

	// UpToDate is set when the recorded instance was already running and
	// nothing was changed.
	UpToDate bool
}

// StopResult describes the outcome of Stop.
type StopResult struct {
	Name        string
	ContainerID string
	Tag         string

	// RenamedTo is the new name of the stopped instance. It is empty when
	// the rename failed, in which case RenameErr holds the cause.
	RenamedTo string
	RenameErr error
}

// SnapshotResult describes the outcome of Snapshot.
type SnapshotResult struct {
	Name        string
	ContainerID string
	Tag         string
}

// RemovalFailure records an instance or image that could not be removed.
type RemovalFailure struct {
	Ref string
	Err error
}

// DeleteResult describes the outcome of Delete.
type DeleteResult struct {
	Name             string
	Option           DeleteOption
	RemovedInstances []string
	RemovedImages    []string
	KeptImage        string
	Failures         []RemovalFailure
}
