package runtime

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/system"
)

func newTestDocker(useSudo bool) (*DockerRuntime, *system.MockExecutor) {
	exec := system.NewMockExecutor()
	return NewDockerRuntime(Options{UseSudo: useSudo, Executor: exec}), exec
}

func TestDockerRuntime_Name(t *testing.T) {
	rt, _ := newTestDocker(false)
	if rt.Name() != "docker" {
		t.Errorf("Name() = %q, want %q", rt.Name(), "docker")
	}

	pm := NewPodmanRuntime(Options{Executor: system.NewMockExecutor()})
	if pm.Name() != "podman" {
		t.Errorf("Name() = %q, want %q", pm.Name(), "podman")
	}
}

func TestDockerRuntime_Commands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(r Runtime) error
		want []string
	}{
		{
			name: "version",
			call: func(r Runtime) error { _, err := r.Version(ctx); return err },
			want: []string{"docker", "--version"},
		},
		{
			name: "run",
			call: func(r Runtime) error { _, err := r.Run(ctx, "nginx:latest", "web"); return err },
			want: []string{"docker", "run", "-d", "--name", "web", "nginx:latest", "sleep", "infinity"},
		},
		{
			name: "running id",
			call: func(r Runtime) error { _, err := r.RunningID(ctx, "web"); return err },
			want: []string{"docker", "ps", "-q", "-f", "name=^/?web$"},
		},
		{
			name: "any id",
			call: func(r Runtime) error { _, err := r.AnyID(ctx, "web"); return err },
			want: []string{"docker", "ps", "-a", "--filter", "name=^/?web$", "--format", "{{.ID}}"},
		},
		{
			name: "stop",
			call: func(r Runtime) error { return r.Stop(ctx, "web") },
			want: []string{"docker", "stop", "web"},
		},
		{
			name: "commit",
			call: func(r Runtime) error { return r.Commit(ctx, "web", "web:v2") },
			want: []string{"docker", "commit", "web", "web:v2"},
		},
		{
			name: "rename",
			call: func(r Runtime) error { return r.Rename(ctx, "web", "web_stopped_20240501100000") },
			want: []string{"docker", "rename", "web", "web_stopped_20240501100000"},
		},
		{
			name: "rm",
			call: func(r Runtime) error { return r.RemoveContainer(ctx, "abc123def456") },
			want: []string{"docker", "rm", "-f", "abc123def456"},
		},
		{
			name: "rmi",
			call: func(r Runtime) error { return r.RemoveImage(ctx, "web:v2") },
			want: []string{"docker", "rmi", "web:v2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, exec := newTestDocker(false)
			exec.DefaultResponse = system.MockResponse{Output: []byte("abc123\n")}

			if err := tt.call(rt); err != nil {
				t.Fatalf("call error: %v", err)
			}

			last, _ := exec.LastCommand()
			got := append([]string{last.Name}, last.Args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDockerRuntime_Sudo(t *testing.T) {
	rt, exec := newTestDocker(true)

	if err := rt.Stop(context.Background(), "web"); err != nil {
		t.Fatalf("Stop error: %v", err)
	}

	last, _ := exec.LastCommand()
	if last.Line() != "sudo docker stop web" {
		t.Errorf("command = %q, want %q", last.Line(), "sudo docker stop web")
	}
}

func TestDockerRuntime_CustomSudoCommand(t *testing.T) {
	exec := system.NewMockExecutor()
	rt := NewDockerRuntime(Options{UseSudo: true, SudoCommand: "doas", Executor: exec})

	if got := rt.CommandLine("ps", "-a"); got != "doas docker ps -a" {
		t.Errorf("CommandLine = %q", got)
	}
}

func TestDockerRuntime_CommandLineQuotes(t *testing.T) {
	rt, _ := newTestDocker(false)

	got := rt.CommandLine("ps", "-a", "--format", "{{.ID}} {{.Names}}")
	want := "docker ps -a --format '{{.ID}} {{.Names}}'"
	if got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
}

func TestDockerRuntime_RunParsesID(t *testing.T) {
	rt, exec := newTestDocker(false)
	exec.AddResponse("docker run", []byte("  abc123def456\n"), nil)

	id, err := rt.Run(context.Background(), "nginx", "web")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if id != "abc123def456" {
		t.Errorf("Run id = %q, want %q", id, "abc123def456")
	}
}

func TestDockerRuntime_RunEmptyOutput(t *testing.T) {
	rt, exec := newTestDocker(false)
	exec.AddResponse("docker run", []byte("\n"), nil)

	if _, err := rt.Run(context.Background(), "nginx", "web"); err == nil {
		t.Error("Run should fail when no id is printed")
	}
}

func TestDockerRuntime_QueryParsing(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"empty", "", ""},
		{"whitespace", "\n  \n", ""},
		{"single", "abc123\n", "abc123"},
		{"multiple", "abc123\ndef456\n", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, exec := newTestDocker(false)
			exec.AddResponse("docker ps", []byte(tt.output), nil)

			running, err := rt.RunningID(context.Background(), "web")
			if err != nil {
				t.Fatalf("RunningID error: %v", err)
			}
			if running != tt.want {
				t.Errorf("RunningID = %q, want %q", running, tt.want)
			}

			anyID, err := rt.AnyID(context.Background(), "web")
			if err != nil {
				t.Fatalf("AnyID error: %v", err)
			}
			if anyID != tt.want {
				t.Errorf("AnyID = %q, want %q", anyID, tt.want)
			}
		})
	}
}

func TestDockerRuntime_FailureIsError(t *testing.T) {
	rt, exec := newTestDocker(true)
	cause := &system.ExecError{Name: "sudo", ExitCode: 1, Stderr: "Error: No such container: web", Err: errors.New("exit status 1")}
	exec.AddResponse("sudo docker commit", nil, cause)

	err := rt.Commit(context.Background(), "web", "web:v2")
	if err == nil {
		t.Fatal("Commit should fail")
	}
	if !errors.Is(err, cause.Err) {
		t.Errorf("error should wrap the exec failure: %v", err)
	}
	if !strings.Contains(err.Error(), "sudo docker commit web web:v2") {
		t.Errorf("error should name the command: %v", err)
	}
	if !strings.Contains(err.Error(), "No such container") {
		t.Errorf("error should carry stderr: %v", err)
	}
}

func TestDockerRuntime_RemoveContainer(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		wantErr bool
	}{
		{"docker missing", "Error response from daemon: No such container: abc123", false},
		{"podman missing", `Error: no container with name or ID "abc123" found: no such container`, false},
		{"other failure", "Error response from daemon: cannot remove container: permission denied", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, exec := newTestDocker(false)
			exec.AddResponse("docker rm", nil, &system.ExecError{
				Name: "docker", ExitCode: 1, Stderr: tt.stderr, Err: errors.New("exit status 1"),
			})

			err := rt.RemoveContainer(context.Background(), "abc123")
			if (err != nil) != tt.wantErr {
				t.Errorf("RemoveContainer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type deadlineExecutor struct {
	hadDeadline bool
}

func (d *deadlineExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	_, d.hadDeadline = ctx.Deadline()
	return nil, nil
}

func TestDockerRuntime_Timeout(t *testing.T) {
	exec := &deadlineExecutor{}
	rt := NewDockerRuntime(Options{Executor: exec, Timeout: time.Minute})

	_ = rt.Stop(context.Background(), "web")
	if !exec.hadDeadline {
		t.Error("commands should run with a deadline when Timeout is set")
	}

	exec = &deadlineExecutor{}
	rt = NewDockerRuntime(Options{Executor: exec})
	_ = rt.Stop(context.Background(), "web")
	if exec.hadDeadline {
		t.Error("commands should not have a deadline without Timeout")
	}
}

func TestNameFilters(t *testing.T) {
	tests := []struct {
		filter func(string) string
		name   string
		want   string
	}{
		{dockerNameFilter, "web", "^/?web$"},
		{dockerNameFilter, "my.app", `^/?my\.app$`},
		{podmanNameFilter, "web", "^web$"},
		{podmanNameFilter, "my.app", `^my\.app$`},
	}

	for _, tt := range tests {
		if got := tt.filter(tt.name); got != tt.want {
			t.Errorf("filter(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPodmanRuntime_Commands(t *testing.T) {
	exec := system.NewMockExecutor()
	rt := NewPodmanRuntime(Options{Executor: exec})

	if _, err := rt.AnyID(context.Background(), "db"); err != nil {
		t.Fatalf("AnyID error: %v", err)
	}

	last, _ := exec.LastCommand()
	want := "podman ps -a --filter name=^db$ --format {{.ID}}"
	if last.Line() != want {
		t.Errorf("command = %q, want %q", last.Line(), want)
	}
}
