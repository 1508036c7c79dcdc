package runtime

import (
	"context"
	"testing"
)

func TestMockRuntime_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMockRuntime()

	id, err := m.Run(ctx, "nginx", "web")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	running, _ := m.RunningID(ctx, "web")
	if running == "" || len(running) != 12 || id[:12] != running {
		t.Errorf("RunningID = %q, want short form of %q", running, id)
	}

	if _, err := m.Run(ctx, "nginx", "web"); err == nil {
		t.Error("Run should fail while the name is in use")
	}

	if err := m.Stop(ctx, "web"); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if running, _ := m.RunningID(ctx, "web"); running != "" {
		t.Errorf("RunningID after Stop = %q, want empty", running)
	}
	if id, _ := m.AnyID(ctx, "web"); id == "" {
		t.Error("AnyID after Stop should still find the instance")
	}

	if err := m.Commit(ctx, "web", "web:v2"); err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	if !m.HasImage("web:v2") {
		t.Error("Commit should create the image")
	}

	if err := m.Rename(ctx, "web", "web_old"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	if id, _ := m.AnyID(ctx, "web"); id != "" {
		t.Error("renamed instance should no longer match the old name")
	}

	second, err := m.Run(ctx, "web:v2", "web")
	if err != nil {
		t.Fatalf("Run after rename error: %v", err)
	}
	if second[:12] == id[:12] {
		t.Error("instances should get distinct short ids")
	}

	if err := m.RemoveImage(ctx, "web:v2"); err == nil {
		t.Error("RemoveImage of an image in use should fail")
	}
	if err := m.RemoveContainer(ctx, second[:12]); err != nil {
		t.Fatalf("RemoveContainer error: %v", err)
	}
	if _, ok := m.Container("web"); ok {
		t.Error("RemoveContainer should match by short id")
	}
	if err := m.RemoveContainer(ctx, "web"); err != nil {
		t.Errorf("RemoveContainer of a missing instance should succeed: %v", err)
	}
	if err := m.RemoveImage(ctx, "web:v2"); err != nil {
		t.Fatalf("RemoveImage error: %v", err)
	}
	if err := m.RemoveImage(ctx, "web:v2"); err == nil {
		t.Error("RemoveImage of a missing image should fail")
	}

	if got := len(m.GetCallsFor("Run")); got != 3 {
		t.Errorf("Run calls = %d, want 3", got)
	}
}
