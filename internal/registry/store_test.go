package registry

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "stateful_containers.json"), filepath.Join(dir, ".scon.lock"))
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := newTestFileStore(t)

	r := store.Load()
	if r == nil || len(r) != 0 {
		t.Errorf("Load() on missing file = %v, want empty registry", r)
	}
}

func TestFileStore_LoadUnparsable(t *testing.T) {
	store := newTestFileStore(t)
	if err := os.WriteFile(store.Path(), []byte("[{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if r := store.Load(); len(r) != 0 {
		t.Errorf("Load() on corrupt file = %v, want empty registry", r)
	}

	backup, err := os.ReadFile(store.Path() + ".corrupt")
	if err != nil {
		t.Fatalf("corrupt registry was not backed up: %v", err)
	}
	if string(backup) != "[{not json" {
		t.Errorf("backup = %q", backup)
	}
}

func TestFileStore_LoadUnparsableBacksUpOnce(t *testing.T) {
	store := newTestFileStore(t)
	backupPath := store.Path() + ".corrupt"
	if err := os.WriteFile(store.Path(), []byte("[{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store.Load()
	old := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(backupPath, old, old); err != nil {
		t.Fatal(err)
	}

	store.Load()
	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Error("unchanged corrupt registry should not be backed up again")
	}

	if err := os.WriteFile(store.Path(), []byte("{also broken"), 0644); err != nil {
		t.Fatal(err)
	}
	store.Load()
	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "{also broken" {
		t.Errorf("backup = %q, want the new corrupt content", backup)
	}
}

func TestFileStore_LoadNullTimestamp(t *testing.T) {
	store := newTestFileStore(t)
	data := `[
    {"name": "web", "image": "nginx", "history": [
        {"container_id": "abc", "timestamp": null, "image": "nginx"},
        {"container_id": "abc", "timestamp": "", "image": "web:v2"}
    ]},
    {"name": "db", "image": "postgres", "history": [
        {"container_id": "def", "timestamp": "2024-05-01T10:00:00Z", "image": "postgres"}
    ]}
]`
	if err := os.WriteFile(store.Path(), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	r := store.Load()
	if len(r) != 2 {
		t.Fatalf("Load() returned %d containers, want 2", len(r))
	}
	for _, e := range r[0].History {
		if !e.Timestamp.IsZero() {
			t.Errorf("timestamp = %v, want zero", e.Timestamp.Time)
		}
	}
	if r[1].History[0].Timestamp.IsZero() {
		t.Error("valid timestamp should be kept")
	}
}

func TestFileStore_PreservesLegacyFields(t *testing.T) {
	store := newTestFileStore(t)
	data := `[
    {"name": "web", "image": "nginx", "original_image": "nginx:1.25", "history": [
        {"container_id": "abc", "timestamp": "2024-05-01T10:00:00Z", "image": "web:v2", "tagged": true}
    ]}
]`
	if err := os.WriteFile(store.Path(), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.Save(store.Load()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	saved, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(saved, &raw); err != nil {
		t.Fatalf("saved registry is not JSON: %v", err)
	}
	if raw[0]["original_image"] != "nginx:1.25" {
		t.Errorf("original_image = %v", raw[0]["original_image"])
	}
	history := raw[0]["history"].([]any)
	if history[0].(map[string]any)["tagged"] != true {
		t.Errorf("tagged = %v", history[0])
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	t1 := NewTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	t2 := NewTimestamp(time.Date(2024, 5, 1, 11, 30, 0, 123000000, time.UTC))

	web := New("web", "nginx:latest")
	web.Append(HistoryEntry{ContainerID: "abc123", Timestamp: t1, Image: "nginx:latest"})
	web.Append(HistoryEntry{ContainerID: "abc123", Timestamp: t2, Image: "web:v2"})
	want := Registry{web, New("db", "postgres:16")}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got := store.Load()
	if len(got) != 2 {
		t.Fatalf("Load() returned %d containers, want 2", len(got))
	}
	if got[0].Name != "web" || got[1].Name != "db" {
		t.Errorf("order not preserved: %s, %s", got[0].Name, got[1].Name)
	}
	if len(got[0].History) != 2 {
		t.Fatalf("web history length = %d, want 2", len(got[0].History))
	}
	for i, e := range got[0].History {
		w := want[0].History[i]
		if e.ContainerID != w.ContainerID || e.Image != w.Image || !e.Timestamp.Equal(w.Timestamp.Time) {
			t.Errorf("history[%d] = %+v, want %+v", i, e, w)
		}
	}
	if got[1].History == nil {
		t.Error("empty history should load as an empty slice")
	}
}

func TestFileStore_SaveFormat(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Save(Registry{New("web", "nginx:latest")}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("registry is not a JSON array: %v", err)
	}
	want := []map[string]any{{"name": "web", "image": "nginx:latest", "history": []any{}}}
	if !reflect.DeepEqual(raw, want) {
		t.Errorf("registry JSON = %v, want %v", raw, want)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Error("registry should be pretty-printed")
	}
}

func TestFileStore_SaveEmpty(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, _ := os.ReadFile(store.Path())
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty registry written as %q, want []", data)
	}
}

func TestFileStore_LoadNaiveTimestamps(t *testing.T) {
	store := newTestFileStore(t)
	legacy := `[
    {
        "name": "web",
        "image": "nginx",
        "history": [
            {"container_id": "abc", "timestamp": "2024-05-01T10:00:00.123456", "image": "nginx"}
        ]
    }
]`
	if err := os.WriteFile(store.Path(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	r := store.Load()
	if len(r) != 1 || len(r[0].History) != 1 {
		t.Fatalf("Load() = %v", r)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC)
	if got := r[0].History[0].Timestamp.Time; !got.Equal(want) {
		t.Errorf("timestamp = %v, want %v", got, want)
	}
}

func TestFileStore_Lock(t *testing.T) {
	store := newTestFileStore(t)

	unlock, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	unlock()

	// Re-locking after release must not block.
	unlock, err = store.Lock()
	if err != nil {
		t.Fatalf("second Lock error: %v", err)
	}
	unlock()
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(New("web", "nginx"))

	r := store.Load()
	r[0].Append(HistoryEntry{ContainerID: "x", Image: "nginx"})
	if c, _ := store.Get("web"); len(c.History) != 0 {
		t.Error("Load should return a copy")
	}

	if err := store.Save(r); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if c, _ := store.Get("web"); len(c.History) != 1 {
		t.Error("Save should persist the history")
	}

	store.SaveErr = errors.New("disk full")
	if err := store.Save(Registry{}); err == nil {
		t.Error("Save should return SaveErr")
	}
	if store.Saves != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves)
	}
}
