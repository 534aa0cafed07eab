package container

import (
	containrstate "containr/state"
)

// State implements the facade's state operation: load the state file and
// return the record unchanged. Idempotent, side-effect-free.
func State(id string) (containrstate.State, error) {
	if err := ValidateID(id); err != nil {
		return containrstate.State{}, err
	}

	handle, s, err := containrstate.Load(id)
	if err != nil {
		return containrstate.State{}, err
	}
	handle.Close()

	return s, nil
}
