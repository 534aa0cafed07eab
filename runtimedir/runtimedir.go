// Package runtimedir implements the filesystem conventions containr uses to
// track container state: one directory per container under
// $XDG_RUNTIME_DIR/containr, holding a state.json and the start FIFO (made
// when the sandbox is constructed and left in place until delete removes the
// directory).
package runtimedir

import (
	"os"
	"path/filepath"
	"strconv"

	"containr/ctrerrors"
)

const (
	// rootDirName is the directory containr namespaces its per-container
	// directories under, inside the runtime dir.
	rootDirName = "containr"

	// StateFileName is the name of the state file within a container's
	// runtime directory.
	StateFileName = "state.json"

	// StartFifoName is the name of the start rendezvous FIFO within a
	// container's runtime directory.
	StartFifoName = "start"
)

// override, when non-empty, replaces the computed root entirely. It is
// set by the CLI's --root flag for callers that want an explicit state
// directory instead of the XDG convention.
var override string

// SetRoot overrides the runtime root directory, bypassing
// $XDG_RUNTIME_DIR entirely. Passing "" restores the default.
func SetRoot(path string) {
	override = path
}

// Root returns $XDG_RUNTIME_DIR/containr, the directory all container
// runtime directories live under, or the path set by SetRoot if any.
// It does not create anything.
func Root() (string, error) {
	if override != "" {
		return override, nil
	}

	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = filepath.Join("/run/user", strconv.Itoa(os.Getuid()))
	}
	if base == "" {
		return "", ctrerrors.ErrNoRuntimeDir
	}
	return filepath.Join(base, rootDirName), nil
}

// ForContainer returns the runtime directory for the given container id,
// e.g. $XDG_RUNTIME_DIR/containr/<id>. It does not create anything.
func ForContainer(id string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, id), nil
}

// StatePath returns the path of a container's state file.
func StatePath(id string) (string, error) {
	dir, err := ForContainer(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

// StartFifoPath returns the path of a container's start FIFO.
func StartFifoPath(id string) (string, error) {
	dir, err := ForContainer(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StartFifoName), nil
}
