package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"

	"github.com/moby/sys/atomicwriter"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
)

// Store loads and saves the whole registry.
type Store interface {
	// Load returns the persisted registry. A missing or unparsable backing
	// store yields an empty registry.
	Load() Registry

	// Save replaces the persisted registry with r.
	Save(r Registry) error

	// Lock serialises load/mutate/save sequences across processes.
	Lock() (unlock func(), err error)
}

// FileStore persists the registry as a pretty-printed JSON array.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a store backed by path, locking on lockPath.
func NewFileStore(path, lockPath string) *FileStore {
	return &FileStore{path: path, lockPath: lockPath}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the registry file.
func (s *FileStore) Load() Registry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("registry unreadable, treating as empty", "path", s.path, "error", err)
		}
		return Registry{}
	}

	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		backup := s.path + ".corrupt"
		logging.Warn("registry unparsable, treating as empty", "path", s.path, "backup", backup, "error", err)
		if prev, rerr := os.ReadFile(backup); rerr == nil && bytes.Equal(prev, data) {
			return Registry{}
		}
		if werr := atomicwriter.WriteFile(backup, data, 0o644); werr != nil {
			logging.Warn("failed to back up unparsable registry", "path", backup, "error", werr)
		}
		return Registry{}
	}

	out := make(Registry, 0, len(r))
	for _, c := range r {
		if c == nil {
			continue
		}
		if c.History == nil {
			c.History = []HistoryEntry{}
		}
		out = append(out, c)
	}
	return out
}

// Save writes r over the registry file via a temporary file and rename.
func (s *FileStore) Save(r Registry) error {
	if r == nil {
		r = Registry{}
	}

	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return errors.StorageError("encode registry", err)
	}

	if err := atomicwriter.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return errors.StorageError("save registry", err)
	}

	logging.Debug("registry saved", "path", s.path, "containers", len(r))
	return nil
}

// Lock takes an exclusive lock on the store's lock file.
func (s *FileStore) Lock() (func(), error) {
	unlock, err := lockFile(s.lockPath)
	if err != nil {
		return nil, errors.StorageError("lock registry", err)
	}
	return unlock, nil
}

var _ Store = (*FileStore)(nil)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu sync.Mutex

	registry Registry

	// SaveErr is returned by Save when set.
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryStore creates a store holding a copy of initial.
func NewMemoryStore(initial ...*StatefulContainer) *MemoryStore {
	return &MemoryStore{registry: clone(initial)}
}

// Load returns a copy of the stored registry.
func (m *MemoryStore) Load() Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.registry)
}

// Save stores a copy of r.
func (m *MemoryStore) Save(r Registry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return errors.StorageError("save registry", m.SaveErr)
	}
	m.registry = clone(r)
	m.Saves++
	return nil
}

// Lock is a no-op.
func (m *MemoryStore) Lock() (func(), error) {
	return func() {}, nil
}

// Get returns a copy of the stored container called name.
func (m *MemoryStore) Get(name string) (*StatefulContainer, bool) {
	return m.Load().Find(name)
}

func clone(r []*StatefulContainer) Registry {
	out := make(Registry, 0, len(r))
	for _, c := range r {
		cp := *c
		cp.History = append([]HistoryEntry{}, c.History...)
		out = append(out, &cp)
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
