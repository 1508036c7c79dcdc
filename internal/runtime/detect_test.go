package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"docker", TypeDocker, false},
		{"podman", TypePodman, false},
		{"Docker", "", true},
		{"xyz", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	opts := Options{Executor: system.NewMockExecutor()}

	for _, typ := range Types {
		rt, err := New(typ, opts)
		if err != nil {
			t.Fatalf("New(%s) error: %v", typ, err)
		}
		if rt.Name() != string(typ) {
			t.Errorf("New(%s).Name() = %q", typ, rt.Name())
		}
	}

	if _, err := New("lxc", opts); err == nil {
		t.Error("New(lxc) should fail")
	}
}

func TestIsAvailable(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("docker --version", []byte("Docker version 27.0.0\n"), nil)
	rt := NewDockerRuntime(Options{Executor: exec})

	if !IsAvailable(context.Background(), rt) {
		t.Error("IsAvailable should be true when --version succeeds")
	}

	exec.AddResponse("docker --version", nil, &system.ExecError{Name: "docker", ExitCode: -1, Err: errors.New("executable file not found")})
	if IsAvailable(context.Background(), rt) {
		t.Error("IsAvailable should be false when --version fails")
	}
}

func TestInstalled(t *testing.T) {
	// Result depends on the host; just ensure only known types come back.
	for _, typ := range Installed() {
		if _, err := ParseType(string(typ)); err != nil {
			t.Errorf("Installed returned unknown type %q", typ)
		}
	}
}
