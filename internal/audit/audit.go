// Package audit keeps a trail of stateful container lifecycle events.
// Events are appended as JSON Lines to a single file in the state directory.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate   EventType = "create"
	EventStart    EventType = "start"
	EventStop     EventType = "stop"
	EventSnapshot EventType = "snapshot"
	EventDelete   EventType = "delete"
	EventConfig   EventType = "config"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Container string    `json:"container,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads audit events in one JSONL file.
type Logger struct {
	path string
	now  func() time.Time
}

// NewLogger creates an audit logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Path returns the event file.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event. A zero timestamp is set to now.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	event.Timestamp = event.Timestamp.UTC()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	logging.Debug("audit event recorded", "type", event.Type, "container", event.Container)
	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, container, details string) error {
	return l.Log(Event{
		Type:      eventType,
		Container: container,
		Details:   details,
	})
}

// Events reads events in chronological order. A non-empty container
// restricts the result to that container.
func (l *Logger) Events(container string) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		if container != "" && event.Container != container {
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}
