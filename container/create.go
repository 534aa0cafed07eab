package container

import (
	"fmt"
	"os"

	"containr/ctrerrors"
	"containr/logging"
	"containr/ocispec"
	"containr/sandbox"
	"containr/state"
)

// CreateOptions holds create's optional inputs beyond id and bundle.
type CreateOptions struct {
	PidFile       string
	ConsoleSocket string
}

// Create implements the facade's create operation, step for step:
// load the spec, persist an initial Creating record, construct and spawn
// the sandbox, write the pid file, await the created event, then persist
// Created with the sandbox's pid.
func Create(id, bundlePath string, opts CreateOptions) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	log := logging.WithPath(logging.WithOperation(logging.WithContainer(logging.Default(), id), "create"), bundlePath)

	// 1. Load spec from <bundle>/config.json.
	spec, err := ocispec.Load(bundlePath)
	if err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.Spec, "create", id)
	}

	// 2. Create runtime directory and state file; persist initial Creating.
	initial := state.State{
		OCIVersion:  ocispec.Version(spec),
		ID:          id,
		Status:      state.StatusCreating,
		BundlePath:  bundlePath,
		Annotations: ocispec.Annotations(spec),
	}
	handle, err := state.CreateNew(id, initial)
	if err != nil {
		return err
	}

	// 3-4. Construct the sandbox (creates the start-FIFO and created pipe)
	// and spawn it.
	handles, err := sandbox.Construct(id, bundlePath, opts.ConsoleSocket, handle)
	if err != nil {
		handle.Close()
		return err
	}

	pid, err := sandbox.Spawn(handles)
	if err != nil {
		handle.Close()
		handles.CreatedReader.Close()
		return err
	}
	log = logging.WithPID(log, pid)
	log.Debug("spawned sandbox")

	// 5. Write the decimal host-pid string to pid_file.
	if opts.PidFile != "" {
		if err := os.WriteFile(opts.PidFile, []byte(fmt.Sprintf("%d", pid)), 0o644); err != nil {
			return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
		}
	}

	// 6. Read the created-event pipe to EOF; assert the payload.
	if err := sandbox.AwaitCreated(handles.CreatedReader); err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "create", id)
	}

	// 7. Update status=Created, pid=<sandbox host pid>; save.
	pidCopy := pid
	created := initial
	created.Status = state.StatusCreated
	created.Pid = &pidCopy
	if err := handle.Rewrite(created); err != nil {
		return err
	}
	handle.Close()

	log.Info("container created")
	return nil
}
