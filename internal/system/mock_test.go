package system

import (
	"context"
	"errors"
	"testing"
)

func TestMockExecutor_LongestPrefixWins(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("docker", []byte("generic"), nil)
	m.AddResponse("docker ps", []byte("ps"), nil)
	m.AddResponse("docker ps -a", []byte("ps-a"), nil)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--version"}, "generic"},
		{[]string{"ps", "-q"}, "ps"},
		{[]string{"ps", "-a", "--filter", "name=web"}, "ps-a"},
	}

	for _, tt := range tests {
		out, err := m.Execute(context.Background(), "docker", tt.args...)
		if err != nil {
			t.Fatalf("Execute(%v) error: %v", tt.args, err)
		}
		if string(out) != tt.want {
			t.Errorf("Execute(%v) = %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestMockExecutor_PrefixIsWordAligned(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("docker ps", []byte("ps"), nil)
	m.DefaultResponse = MockResponse{Output: []byte("default")}

	out, _ := m.Execute(context.Background(), "docker", "psx")
	if string(out) != "default" {
		t.Errorf("Execute(psx) = %q, want default response", out)
	}
}

func TestMockExecutor_RecordsCommands(t *testing.T) {
	m := NewMockExecutor()
	wantErr := errors.New("boom")
	m.AddResponse("sudo podman stop", nil, wantErr)

	_, err := m.Execute(context.Background(), "sudo", "podman", "stop", "web")
	if !errors.Is(err, wantErr) {
		t.Errorf("Execute error = %v, want %v", err, wantErr)
	}

	last, ok := m.LastCommand()
	if !ok {
		t.Fatal("LastCommand returned false")
	}
	if last.Line() != "sudo podman stop web" {
		t.Errorf("LastCommand = %q", last.Line())
	}

	m.Reset()
	if _, ok := m.LastCommand(); ok {
		t.Error("LastCommand after Reset should return false")
	}
}
