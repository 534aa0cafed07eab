package container

import (
	"syscall"

	"containr/ctrerrors"
	"containr/logging"
	containrstate "containr/state"
)

// Kill implements the facade's kill operation: reject Creating/Stopped
// containers, otherwise signal the recorded pid. It performs no state
// mutation — the sandbox reaps the payload and transitions to Stopped.
func Kill(id string, sig int) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	log := logging.WithOperation(logging.WithContainer(logging.Default(), id), "kill")

	handle, s, err := containrstate.Load(id)
	if err != nil {
		return err
	}
	defer handle.Close()

	if s.Status == containrstate.StatusCreating || s.Status == containrstate.StatusStopped {
		return ctrerrors.WrapWithContainer(ctrerrors.ErrNotKillable, ctrerrors.Precondition, "kill", id)
	}
	if s.Pid == nil {
		return ctrerrors.WrapWithContainer(ctrerrors.ErrNoPid, ctrerrors.Precondition, "kill", id)
	}

	if err := syscall.Kill(*s.Pid, syscall.Signal(sig)); err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "kill", id)
	}

	logging.WithPID(log, *s.Pid).Info("signal sent", "signal", sig)
	return nil
}
