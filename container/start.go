package container

import (
	"containr/logging"
	"containr/sandbox"
)

// Start implements the facade's start operation: open the start-FIFO for
// writing and write the start command. It performs no state mutation —
// the sandbox becomes the next writer of the state file once it wakes.
func Start(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	log := logging.WithOperation(logging.WithContainer(logging.Default(), id), "start")

	if err := sandbox.SignalStart(id); err != nil {
		return err
	}
	log.Info("start signaled")
	return nil
}
