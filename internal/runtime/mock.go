package runtime

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockContainer is an instance tracked by MockRuntime.
type MockContainer struct {
	ID      string
	Name    string
	Image   string
	Running bool
}

// MockRuntime is a mock implementation of Runtime for testing. It keeps
// enough engine state (instances by name, images) for lifecycle sequences
// to behave like a real engine.
type MockRuntime struct {
	mu sync.RWMutex

	// Containers tracks mock instances by name
	Containers map[string]*MockContainer

	// Images tracks image references that exist
	Images map[string]bool

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall

	// NameValue is returned by Name (default "mock")
	NameValue string

	nextID int
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Containers: make(map[string]*MockContainer),
		Images:     make(map[string]bool),
		Errors:     make(map[string]error),
		CallLog:    make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// ClearError removes an injected error
func (m *MockRuntime) ClearError(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Errors, operation)
}

// AddContainer adds an instance to the mock, as if created outside scon
func (m *MockRuntime) AddContainer(name, id, image string, running bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers[name] = &MockContainer{ID: id, Name: name, Image: image, Running: running}
}

// Container returns a copy of the named instance
func (m *MockRuntime) Container(name string) (MockContainer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.Containers[name]
	if !ok {
		return MockContainer{}, false
	}
	return *c, true
}

// HasImage reports whether ref exists
func (m *MockRuntime) HasImage(ref string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Images[ref]
}

// GetCalls returns all recorded calls
func (m *MockRuntime) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.CallLog))
	copy(calls, m.CallLog)
	return calls
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Reset clears all state
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers = make(map[string]*MockContainer)
	m.Images = make(map[string]bool)
	m.Errors = make(map[string]error)
	m.CallLog = make([]MockCall, 0)
	m.nextID = 0
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// CommandLine renders a docker-style command line
func (m *MockRuntime) CommandLine(args ...string) string {
	return strings.Join(append([]string{m.Name()}, args...), " ")
}

// Version returns a fixed version string
func (m *MockRuntime) Version(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Version")

	if err, ok := m.Errors["Version"]; ok {
		return "", err
	}
	return "mock version 1.0", nil
}

// Run creates and starts an instance
func (m *MockRuntime) Run(ctx context.Context, image, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Run", image, name)

	if err, ok := m.Errors["Run"]; ok {
		return "", err
	}
	if _, exists := m.Containers[name]; exists {
		return "", fmt.Errorf("mock: container name %q is already in use", name)
	}

	m.nextID++
	id := fmt.Sprintf("c%011d", m.nextID) + strings.Repeat("0", 52)
	m.Containers[name] = &MockContainer{ID: id, Name: name, Image: image, Running: true}
	m.Images[image] = true
	return id, nil
}

// RunningID returns the short id of a running instance
func (m *MockRuntime) RunningID(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RunningID", name)

	if err, ok := m.Errors["RunningID"]; ok {
		return "", err
	}
	if c, ok := m.Containers[name]; ok && c.Running {
		return shortID(c.ID), nil
	}
	return "", nil
}

// AnyID returns the short id of an instance in any state
func (m *MockRuntime) AnyID(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AnyID", name)

	if err, ok := m.Errors["AnyID"]; ok {
		return "", err
	}
	if c, ok := m.Containers[name]; ok {
		return shortID(c.ID), nil
	}
	return "", nil
}

// Stop stops an instance
func (m *MockRuntime) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}
	c, ok := m.Containers[name]
	if !ok {
		return fmt.Errorf("mock: no such container: %s", name)
	}
	c.Running = false
	return nil
}

// Commit records a new image
func (m *MockRuntime) Commit(ctx context.Context, name, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Commit", name, tag)

	if err, ok := m.Errors["Commit"]; ok {
		return err
	}
	if _, ok := m.Containers[name]; !ok {
		return fmt.Errorf("mock: no such container: %s", name)
	}
	m.Images[tag] = true
	return nil
}

// Rename renames an instance
func (m *MockRuntime) Rename(ctx context.Context, name, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Rename", name, newName)

	if err, ok := m.Errors["Rename"]; ok {
		return err
	}
	c, ok := m.Containers[name]
	if !ok {
		return fmt.Errorf("mock: no such container: %s", name)
	}
	if _, taken := m.Containers[newName]; taken {
		return fmt.Errorf("mock: container name %q is already in use", newName)
	}
	delete(m.Containers, name)
	c.Name = newName
	m.Containers[newName] = c
	return nil
}

// RemoveContainer deletes an instance matched by name or id prefix.
// A missing instance is not an error.
func (m *MockRuntime) RemoveContainer(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveContainer", ref)

	if err, ok := m.Errors["RemoveContainer"]; ok {
		return err
	}
	for name, c := range m.Containers {
		if name == ref || strings.HasPrefix(c.ID, ref) {
			delete(m.Containers, name)
			return nil
		}
	}
	return nil
}

// RemoveImage deletes an image. Like a real engine it refuses images that
// an instance, running or stopped, was created from.
func (m *MockRuntime) RemoveImage(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveImage", ref)

	if err, ok := m.Errors["RemoveImage"]; ok {
		return err
	}
	if !m.Images[ref] {
		return fmt.Errorf("mock: no such image: %s", ref)
	}
	for _, c := range m.Containers {
		if c.Image == ref {
			return fmt.Errorf("mock: unable to remove %s: container %s is using it", ref, shortID(c.ID))
		}
	}
	delete(m.Images, ref)
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

var (
	_ Runtime         = (*MockRuntime)(nil)
	_ CommandRenderer = (*MockRuntime)(nil)
)
