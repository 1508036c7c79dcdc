package runtime

import "regexp"

// PodmanRuntime implements the Runtime interface using the podman CLI.
type PodmanRuntime struct {
	cliRuntime
}

// NewPodmanRuntime creates a podman runtime.
func NewPodmanRuntime(opts Options) *PodmanRuntime {
	return &PodmanRuntime{cliRuntime: newCLIRuntime(string(TypePodman), opts, podmanNameFilter)}
}

func podmanNameFilter(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}

var _ Runtime = (*PodmanRuntime)(nil)
