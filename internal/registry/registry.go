package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex accepts names that are valid both as a container name and as an
// image repository path component, since snapshot tags are derived from it.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(?:(?:\.|_|__|-+)[a-z0-9]+)*$`)

const maxNameLength = 63

// ValidateName checks if a stateful container name is valid.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("container name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("invalid container name %q: must be at most %d characters", name, maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid container name %q: use lowercase letters and digits, separated by '.', '_', '__' or '-'", name)
	}
	return nil
}

// HistoryEntry records one runtime instantiation or commit.
type HistoryEntry struct {
	ContainerID string    `json:"container_id"`
	Timestamp   Timestamp `json:"timestamp"`
	Image       string    `json:"image"`

	// Tagged marks a snapshot the operator flagged as important. Older
	// registries carry it; it is preserved and shown by list.
	Tagged bool `json:"tagged,omitempty"`
}

// StatefulContainer is a named logical container whose filesystem state is
// carried across stop/start cycles by committed snapshots.
type StatefulContainer struct {
	Name    string         `json:"name"`
	Image   string         `json:"image"`
	History []HistoryEntry `json:"history"`

	// OriginalImage is written by older registries alongside Image and is
	// preserved as-is.
	OriginalImage string `json:"original_image,omitempty"`
}

// New creates a registered container with an empty history.
func New(name, image string) *StatefulContainer {
	return &StatefulContainer{
		Name:    name,
		Image:   image,
		History: []HistoryEntry{},
	}
}

// NextSnapshotTag returns the tag the next commit will produce:
// "<name>:v<len(history)+1>".
func (c *StatefulContainer) NextSnapshotTag() string {
	return fmt.Sprintf("%s:v%d", c.Name, len(c.History)+1)
}

// Append adds an entry to the end of the history.
func (c *StatefulContainer) Append(entry HistoryEntry) {
	c.History = append(c.History, entry)
}

// Latest returns the most recent history entry.
func (c *StatefulContainer) Latest() (HistoryEntry, bool) {
	if len(c.History) == 0 {
		return HistoryEntry{}, false
	}
	return c.History[len(c.History)-1], true
}

// HasInstance reports whether id was recorded in the history. Short and full
// ids match each other: ps prints 12 characters, run -d prints 64.
func (c *StatefulContainer) HasInstance(id string) bool {
	if id == "" {
		return false
	}
	for _, e := range c.History {
		if e.ContainerID == "" {
			continue
		}
		if idsMatch(e.ContainerID, id) {
			return true
		}
	}
	return false
}

// ShortID returns the 12-character form runtimes print for id.
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// idsMatch treats a short id and its full form as the same instance.
func idsMatch(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// InstanceIDs returns the runtime instances recorded in history, oldest
// first. Short and full forms of one id count once, keeping the first seen.
func (c *StatefulContainer) InstanceIDs() []string {
	var ids []string
	for _, e := range c.History {
		if e.ContainerID == "" {
			continue
		}
		dup := false
		for _, id := range ids {
			if idsMatch(id, e.ContainerID) {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, e.ContainerID)
		}
	}
	return ids
}

// SnapshotTags returns the distinct snapshot images in history, oldest
// first. The base image is never a snapshot.
func (c *StatefulContainer) SnapshotTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, e := range c.History {
		if e.Image == "" || e.Image == c.Image || seen[e.Image] {
			continue
		}
		seen[e.Image] = true
		tags = append(tags, e.Image)
	}
	return tags
}

// LatestSnapshot returns the most recently recorded snapshot image.
func (c *StatefulContainer) LatestSnapshot() (string, bool) {
	for i := len(c.History) - 1; i >= 0; i-- {
		if img := c.History[i].Image; img != "" && img != c.Image {
			return img, true
		}
	}
	return "", false
}

// Registry is the ordered set of stateful containers. Names are unique.
type Registry []*StatefulContainer

// Index returns the position of name, or -1.
func (r Registry) Index(name string) int {
	for i, c := range r {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Find returns the container called name.
func (r Registry) Find(name string) (*StatefulContainer, bool) {
	if i := r.Index(name); i >= 0 {
		return r[i], true
	}
	return nil, false
}

// Add appends c. It fails if the name is already registered.
func (r Registry) Add(c *StatefulContainer) (Registry, error) {
	if r.Index(c.Name) >= 0 {
		return r, fmt.Errorf("container %q already registered", c.Name)
	}
	return append(r, c), nil
}

// Remove returns the registry without name, preserving order.
func (r Registry) Remove(name string) Registry {
	i := r.Index(name)
	if i < 0 {
		return r
	}
	out := make(Registry, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...)
}
