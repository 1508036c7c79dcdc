package runtime

import "regexp"

// DockerRuntime implements the Runtime interface using the docker CLI.
type DockerRuntime struct {
	cliRuntime
}

// NewDockerRuntime creates a docker runtime.
func NewDockerRuntime(opts Options) *DockerRuntime {
	return &DockerRuntime{cliRuntime: newCLIRuntime(string(TypeDocker), opts, dockerNameFilter)}
}

// dockerNameFilter anchors the name regex. Docker matches the filter against
// names that may carry a leading slash.
func dockerNameFilter(name string) string {
	return "^/?" + regexp.QuoteMeta(name) + "$"
}

var _ Runtime = (*DockerRuntime)(nil)
