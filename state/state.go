// Package state implements containr's state store: the single state.json
// file each container's runtime directory holds, and the create/load/save
// operations both the container facade and the sandbox use to read and
// write it.
//
// The facade and the sandbox share one open file description across the
// clone(2) boundary (the facade passes its file descriptor down via
// exec.Cmd.ExtraFiles), so writes after the initial create are a
// truncate-then-rewrite on that shared handle rather than an atomic
// rename. A reader that observes the file mid-write can see a short or
// empty read; this is accepted, not guarded against. There is no lock: the
// sandbox only starts writing after it has read the start command from the
// start FIFO, which hands ownership of the file over from the facade.
package state

import (
	"encoding/json"
	"io"
	"os"

	"containr/ctrerrors"
	"containr/runtimedir"
)

// Status is a container's position in the Creating -> Created -> Running ->
// Stopped lifecycle. Transitions only ever move forward.
type Status string

const (
	StatusCreating Status = "creating"
	StatusCreated  Status = "created"
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
)

// State is the OCI state record for one container, persisted verbatim as
// JSON.
type State struct {
	OCIVersion  string            `json:"oci_version"`
	ID          string            `json:"id"`
	Status      Status            `json:"status"`
	Pid         *int              `json:"pid"`
	BundlePath  string            `json:"bundle_path"`
	Annotations map[string]string `json:"annotations"`
}

// Handle is an open state.json file description, shared by whichever
// processes hold a copy of its file descriptor.
type Handle struct {
	f *os.File
}

// CreateNew creates a container's runtime directory and its state.json,
// failing with an IO error if either already exists — a second create for
// the same id is a filesystem collision, not a lifecycle precondition. It
// writes the initial (Creating) record and returns a handle positioned for
// the later rewrite the facade performs once the sandbox has a pid.
func CreateNew(id string, initial State) (*Handle, error) {
	root, err := runtimedir.Root()
	if err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}

	dir, err := runtimedir.ForContainer(id)
	if err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}
	if err := os.Mkdir(dir, 0o700); err != nil {
		if os.IsExist(err) {
			return nil, ctrerrors.WrapWithContainer(ctrerrors.ErrContainerExists, ctrerrors.IO, "create", id)
		}
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}

	path, err := runtimedir.StatePath(id)
	if err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ctrerrors.WrapWithContainer(ctrerrors.ErrContainerExists, ctrerrors.IO, "create", id)
		}
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}

	h := &Handle{f: f}
	if err := h.Rewrite(initial); err != nil {
		f.Close()
		return nil, err
	}
	return h, nil
}

// Load opens a container's existing state.json and decodes it. The
// returned Handle is read-write but callers that only need to inspect
// state should call Close promptly.
func Load(id string) (*Handle, State, error) {
	path, err := runtimedir.StatePath(id)
	if err != nil {
		return nil, State{}, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "load", id)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, State{}, ctrerrors.WrapWithContainer(err, ctrerrors.NotFound, "load", id)
		}
		return nil, State{}, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "load", id)
	}

	var s State
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		f.Close()
		return nil, State{}, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "load", id)
	}

	return &Handle{f: f}, s, nil
}

// Reload re-reads the handle's current contents from the start of the
// file, picking up writes another process made on the shared file
// description.
func (h *Handle) Reload() (State, error) {
	if _, err := h.f.Seek(0, io.SeekStart); err != nil {
		return State{}, ctrerrors.Wrap(err, ctrerrors.IO, "reload")
	}
	var s State
	if err := json.NewDecoder(h.f).Decode(&s); err != nil {
		return State{}, ctrerrors.Wrap(err, ctrerrors.IO, "reload")
	}
	return s, nil
}

// Rewrite truncates the handle's underlying file and writes s from
// offset zero. This is the non-atomic write path every writer uses: the
// facade for Creating -> Created, the sandbox for Created -> Running ->
// Stopped.
func (h *Handle) Rewrite(s State) error {
	if err := h.f.Truncate(0); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "save")
	}
	if _, err := h.f.Seek(0, io.SeekStart); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "save")
	}
	enc := json.NewEncoder(h.f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "save")
	}
	return nil
}

// File returns the underlying *os.File, for passing as an inherited
// descriptor via exec.Cmd.ExtraFiles.
func (h *Handle) File() *os.File {
	return h.f
}

// Close closes the handle's file descriptor.
func (h *Handle) Close() error {
	return h.f.Close()
}

// FromFd wraps an inherited file descriptor (received across a clone/exec
// boundary) as a Handle, for the sandbox side of the shared state file.
func FromFd(fd uintptr, name string) *Handle {
	return &Handle{f: os.NewFile(fd, name)}
}
