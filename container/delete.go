package container

import (
	"os"
	"syscall"
	"time"

	"containr/ctrerrors"
	"containr/logging"
	"containr/runtimedir"
	containrstate "containr/state"
)

// waitForExitTimeout bounds how long force-delete waits for a SIGKILLed
// payload to actually exit before giving up and removing the runtime
// directory anyway.
const waitForExitTimeout = 5 * time.Second

// Delete implements the facade's delete operation: if the container is
// not Stopped, fail unless force is set, in which case SIGKILL the
// recorded pid best-effort; then recursively remove the runtime
// directory.
func Delete(id string, force bool) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	log := logging.WithOperation(logging.WithContainer(logging.Default(), id), "delete")

	handle, s, err := containrstate.Load(id)
	if err != nil {
		return err
	}
	handle.Close()

	if s.Status != containrstate.StatusStopped {
		if !force {
			return ctrerrors.WrapWithContainer(ctrerrors.ErrNotDeletable, ctrerrors.Precondition, "delete", id)
		}
		if s.Pid != nil {
			if err := syscall.Kill(*s.Pid, syscall.SIGKILL); err != nil {
				logging.Warn("force-kill failed, deleting anyway", "container", id, "pid", *s.Pid, "error", err)
			} else {
				logging.WithPID(log, *s.Pid).Debug("force-killed, waiting for exit")
				waitForExit(*s.Pid, waitForExitTimeout)
			}
		}
	}

	dir, err := runtimedir.ForContainer(id)
	if err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "delete", id)
	}
	if err := os.RemoveAll(dir); err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "delete", id)
	}

	log.Info("container deleted")
	return nil
}

// waitForExit polls pid with signal 0 until it stops responding or the
// timeout elapses. Best-effort: delete proceeds regardless of outcome.
func waitForExit(pid int, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(pid, 0); err != nil {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
