package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
)

// stoppedSuffixLayout formats the UTC time appended to renamed instances.
const stoppedSuffixLayout = "20060102150405"

// EventRecorder receives an event for every successful mutation.
type EventRecorder interface {
	LogEvent(eventType audit.EventType, container, details string) error
}

// Manager drives the lifecycle of registered containers against a runtime.
type Manager struct {
	store  registry.Store
	rt     runtime.Runtime
	events EventRecorder
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithEvents records an audit event after every successful mutation.
func WithEvents(r EventRecorder) Option {
	return func(m *Manager) {
		m.events = r
	}
}

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager over store and rt.
func NewManager(store registry.Store, rt runtime.Runtime, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		rt:    rt,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Runtime returns the runtime the manager drives.
func (m *Manager) Runtime() runtime.Runtime {
	return m.rt
}

// Create registers a new container with an empty history. A runtime
// instance that already uses the name is a conflict.
func (m *Manager) Create(ctx context.Context, name, image string) (*registry.StatefulContainer, error) {
	logging.Debug("creating stateful container", "name", name, "image", image)

	if err := registry.ValidateName(name); err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	if strings.TrimSpace(image) == "" {
		return nil, errors.ValidationError("image cannot be empty")
	}

	if err := runtime.Probe(ctx, m.rt); err != nil {
		return nil, errors.RuntimeUnavailable(m.rt.Name(), err)
	}

	var created *registry.StatefulContainer
	err := m.mutate(func(reg registry.Registry) (registry.Registry, error) {
		if _, exists := reg.Find(name); exists {
			return nil, errors.AlreadyExists(name)
		}

		// start would collide with it on --name.
		id, err := m.rt.AnyID(ctx, name)
		if err != nil {
			return nil, errors.ContainerFailed("query", err)
		}
		if id != "" {
			return nil, errors.Conflict(fmt.Sprintf(
				"a %s container named %s (id %s) already exists; remove it or choose a different name",
				m.rt.Name(), name, registry.ShortID(id)))
		}

		created = registry.New(name, image)
		return reg.Add(created)
	})
	if err != nil {
		return nil, err
	}

	m.record(audit.EventCreate, name, "image="+image)
	return created, nil
}

// Start runs an instance of a registered container and records it.
//
// If an instance called name is already running and appears in the
// history, nothing changes and the result reports UpToDate. A running
// instance that scon did not record is a conflict.
func (m *Manager) Start(ctx context.Context, name string, opts StartOptions) (*StartResult, error) {
	logging.Debug("starting stateful container", "name", name, "latest", opts.FromLatestSnapshot)

	var result *StartResult
	err := m.mutate(func(reg registry.Registry) (registry.Registry, error) {
		c, ok := reg.Find(name)
		if !ok {
			return nil, errors.ContainerNotFound(name)
		}

		running, err := m.rt.RunningID(ctx, name)
		if err != nil {
			return nil, errors.ContainerFailed("query", err)
		}
		if running != "" {
			if c.HasInstance(running) {
				image := c.Image
				if latest, ok := c.Latest(); ok {
					image = latest.Image
				}
				result = &StartResult{Name: name, ContainerID: running, Image: image, UpToDate: true}
				return nil, nil
			}
			return nil, errors.Conflict(fmt.Sprintf(
				"a container named %s (id %s) is running but is not part of its history; stop or rename it before starting",
				name, running))
		}

		image := c.Image
		if opts.FromLatestSnapshot {
			if tag, ok := c.LatestSnapshot(); ok {
				image = tag
			} else {
				logging.Debug("no snapshot recorded, using base image", "name", name, "image", image)
			}
		}

		id, err := m.rt.Run(ctx, image, name)
		if err != nil {
			return nil, errors.ContainerFailed("run", err)
		}

		c.Append(registry.HistoryEntry{
			ContainerID: id,
			Timestamp:   registry.NewTimestamp(m.now()),
			Image:       image,
		})
		result = &StartResult{Name: name, ContainerID: id, Image: image}
		return reg, nil
	})
	if err != nil {
		return nil, err
	}

	if !result.UpToDate {
		m.record(audit.EventStart, name, fmt.Sprintf("id=%s image=%s", result.ContainerID, result.Image))
	}
	return result, nil
}

// Stop stops the instance, commits it to the next snapshot tag and records
// the snapshot. The stopped instance is renamed to
// <name>_stopped_<timestamp> so the name is free for the next start.
//
// When the commit fails the instance stays stopped and the history is
// left unchanged. A failed rename only produces a warning.
func (m *Manager) Stop(ctx context.Context, name string) (*StopResult, error) {
	logging.Debug("stopping stateful container", "name", name)

	var result *StopResult
	err := m.mutate(func(reg registry.Registry) (registry.Registry, error) {
		c, ok := reg.Find(name)
		if !ok {
			return nil, errors.ContainerNotFound(name)
		}

		id, err := m.rt.AnyID(ctx, name)
		if err != nil {
			return nil, errors.ContainerFailed("query", err)
		}
		if id == "" {
			return nil, errors.NoSuchInstance(name)
		}

		if err := m.rt.Stop(ctx, name); err != nil {
			return nil, errors.ContainerFailed("stop", err)
		}

		tag := c.NextSnapshotTag()
		if err := m.rt.Commit(ctx, name, tag); err != nil {
			return nil, errors.ContainerFailed("commit", err)
		}

		now := m.now()
		result = &StopResult{Name: name, ContainerID: id, Tag: tag}

		renamed := name + "_stopped_" + now.UTC().Format(stoppedSuffixLayout)
		if err := m.rt.Rename(ctx, name, renamed); err != nil {
			logging.Warn("failed to rename stopped container", "name", name, "to", renamed, "error", err)
			result.RenameErr = err
		} else {
			result.RenamedTo = renamed
		}

		c.Append(registry.HistoryEntry{
			ContainerID: id,
			Timestamp:   registry.NewTimestamp(now),
			Image:       tag,
		})
		return reg, nil
	})
	if err != nil {
		return nil, err
	}

	m.record(audit.EventStop, name, "tag="+result.Tag)
	return result, nil
}

// Snapshot commits the running instance to the next snapshot tag without
// stopping it.
func (m *Manager) Snapshot(ctx context.Context, name string) (*SnapshotResult, error) {
	logging.Debug("snapshotting stateful container", "name", name)

	var result *SnapshotResult
	err := m.mutate(func(reg registry.Registry) (registry.Registry, error) {
		c, ok := reg.Find(name)
		if !ok {
			return nil, errors.ContainerNotFound(name)
		}

		running, err := m.rt.RunningID(ctx, name)
		if err != nil {
			return nil, errors.ContainerFailed("query", err)
		}
		if running == "" {
			return nil, errors.NotRunning(name)
		}

		tag := c.NextSnapshotTag()
		if err := m.rt.Commit(ctx, name, tag); err != nil {
			return nil, errors.ContainerFailed("commit", err)
		}

		c.Append(registry.HistoryEntry{
			ContainerID: running,
			Timestamp:   registry.NewTimestamp(m.now()),
			Image:       tag,
		})
		result = &SnapshotResult{Name: name, ContainerID: running, Tag: tag}
		return reg, nil
	})
	if err != nil {
		return nil, err
	}

	m.record(audit.EventSnapshot, name, "tag="+result.Tag)
	return result, nil
}

// List returns every registered container in registration order.
func (m *Manager) List() registry.Registry {
	return m.store.Load()
}

// Get returns the registered container called name.
func (m *Manager) Get(name string) (*registry.StatefulContainer, error) {
	c, ok := m.store.Load().Find(name)
	if !ok {
		return nil, errors.ContainerNotFound(name)
	}
	return c, nil
}

// Delete removes a stopped container from the registry. AllSnapshots and
// KeepLatestSnapshot first remove the committed snapshot images; a failed
// removal is reported in the result and does not stop the delete.
func (m *Manager) Delete(ctx context.Context, name string, opt DeleteOption) (*DeleteResult, error) {
	logging.Debug("deleting stateful container", "name", name, "option", opt)

	if !opt.Valid() {
		return nil, errors.ValidationError(fmt.Sprintf("invalid delete option: %s", opt))
	}

	var result *DeleteResult
	err := m.mutate(func(reg registry.Registry) (registry.Registry, error) {
		c, ok := reg.Find(name)
		if !ok {
			return nil, errors.ContainerNotFound(name)
		}

		running, err := m.rt.RunningID(ctx, name)
		if err != nil {
			return nil, errors.ContainerFailed("query", err)
		}
		if running != "" {
			return nil, errors.StillRunning(name)
		}

		result = &DeleteResult{Name: name, Option: opt}
		remove, keep := imagesToRemove(c, opt)
		result.KeptImage = keep

		// Stopped instances keep their source image referenced, so they
		// go before the images.
		if len(remove) > 0 {
			for _, id := range c.InstanceIDs() {
				if err := m.rt.RemoveContainer(ctx, id); err != nil {
					logging.Warn("failed to remove stopped instance", "id", id, "error", err)
					result.Failures = append(result.Failures, RemovalFailure{Ref: id, Err: err})
					continue
				}
				result.RemovedInstances = append(result.RemovedInstances, id)
			}
		}

		for _, ref := range remove {
			if err := m.rt.RemoveImage(ctx, ref); err != nil {
				logging.Warn("failed to remove snapshot image", "image", ref, "error", err)
				result.Failures = append(result.Failures, RemovalFailure{Ref: ref, Err: err})
				continue
			}
			result.RemovedImages = append(result.RemovedImages, ref)
		}

		return reg.Remove(name), nil
	})
	if err != nil {
		return nil, err
	}

	m.record(audit.EventDelete, name, "option="+opt.String())
	return result, nil
}

// imagesToRemove returns the snapshot images opt deletes and the one it keeps.
func imagesToRemove(c *registry.StatefulContainer, opt DeleteOption) ([]string, string) {
	switch opt {
	case DeleteAllSnapshots:
		return c.SnapshotTags(), ""
	case DeleteKeepLatestSnapshot:
		latest, ok := c.LatestSnapshot()
		if !ok {
			return nil, ""
		}
		var remove []string
		for _, tag := range c.SnapshotTags() {
			if tag != latest {
				remove = append(remove, tag)
			}
		}
		return remove, latest
	default:
		return nil, ""
	}
}

// mutate runs fn between load and save while holding the store lock.
// fn returns the registry to save, or nil to leave the store untouched.
func (m *Manager) mutate(fn func(registry.Registry) (registry.Registry, error)) error {
	unlock, err := m.store.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	next, err := fn(m.store.Load())
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	return m.store.Save(next)
}

func (m *Manager) record(eventType audit.EventType, name, details string) {
	if m.events == nil {
		return
	}
	if err := m.events.LogEvent(eventType, name, details); err != nil {
		logging.Warn("failed to record audit event", "type", eventType, "container", name, "error", err)
	}
}

// ConflictHints returns the commands an operator can run to inspect and
// clear a foreign instance called name.
func ConflictHints(rt runtime.Runtime, name string) []string {
	render := func(args ...string) string {
		if r, ok := rt.(runtime.CommandRenderer); ok {
			return r.CommandLine(args...)
		}
		return strings.Join(append([]string{rt.Name()}, args...), " ")
	}
	return []string{
		"Inspect it:   " + render("ps", "-a", "--filter", "name="+name),
		"Stop it:      " + render("stop", name),
		"Rename it:    " + render("rename", name, name+"_old"),
		"Or remove it: " + render("rm", "-f", name),
	}
}
