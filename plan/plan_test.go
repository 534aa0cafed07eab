package plan

import (
	"testing"

	specs "github.com/opencontainers/runtime-spec/specs-go"
)

func TestNewResolvesArgsEnvAndCwd(t *testing.T) {
	spec := &specs.Spec{
		Process: &specs.Process{
			Args: []string{"/bin/echo", "hi"},
			Env:  []string{"FOO=bar", "BAZ=qux"},
			Cwd:  "/work",
		},
	}

	p, err := New(spec)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Path != "/bin/echo" {
		t.Errorf("Path = %q, want /bin/echo", p.Path)
	}
	if len(p.Args) != 1 || p.Args[0] != "hi" {
		t.Errorf("Args = %v, want [hi]", p.Args)
	}
	if p.Cwd != "/work" {
		t.Errorf("Cwd = %q, want /work", p.Cwd)
	}
	want := map[string]bool{"FOO=bar": true, "BAZ=qux": true}
	if len(p.Env) != 2 || !want[p.Env[0]] || !want[p.Env[1]] {
		t.Errorf("Env = %v, want permutation of %v", p.Env, want)
	}
}

func TestNewDefaultsCwd(t *testing.T) {
	spec := &specs.Spec{Process: &specs.Process{Args: []string{"/bin/true"}}}
	p, err := New(spec)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Cwd != "/" {
		t.Errorf("Cwd = %q, want /", p.Cwd)
	}
}

func TestNewRejectsMissingProcess(t *testing.T) {
	if _, err := New(&specs.Spec{}); err == nil {
		t.Fatal("expected error for spec with no process")
	}
}

func TestNewRejectsEmptyArgs(t *testing.T) {
	spec := &specs.Spec{Process: &specs.Process{Args: []string{}}}
	if _, err := New(spec); err == nil {
		t.Fatal("expected error for empty args")
	}
}

func TestNewRejectsMalformedEnvEntry(t *testing.T) {
	spec := &specs.Spec{Process: &specs.Process{
		Args: []string{"/bin/true"},
		Env:  []string{"FOO=bar", "broken"},
	}}
	if _, err := New(spec); err == nil {
		t.Fatal("expected error for malformed env entry")
	}
}
