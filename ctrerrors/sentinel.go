package ctrerrors

// Sentinel errors for conditions that callers commonly test for directly
// with errors.Is. Each wraps one of the five kinds.
var (
	// ErrContainerExists is returned when create targets an id whose
	// runtime directory or state file already exists. This is a
	// filesystem collision, not a lifecycle precondition, so it carries
	// the IO kind.
	ErrContainerExists = &Error{Kind: IO, Detail: "container already exists"}

	// ErrContainerNotFound matches, via errors.Is, any NotFound-kind error,
	// such as the one load returns when it finds no state file for the
	// given id. Load itself does not return this value.
	ErrContainerNotFound = &Error{Kind: NotFound, Detail: "container not found"}

	// ErrEmptyContainerID is returned when an operation is given a blank id.
	ErrEmptyContainerID = &Error{Kind: Precondition, Detail: "container id must not be empty"}

	// ErrNotKillable is returned when kill targets a Creating or Stopped
	// container.
	ErrNotKillable = &Error{Kind: Precondition, Detail: "container is creating or stopped and can't be killed"}

	// ErrNotDeletable is returned when delete targets a non-Stopped
	// container without --force.
	ErrNotDeletable = &Error{Kind: Precondition, Detail: "container is not stopped and can't be deleted"}

	// ErrNoPid is returned when an operation that requires a live pid finds
	// none recorded in state.
	ErrNoPid = &Error{Kind: Precondition, Detail: "pid is required"}

	// ErrNoProcess is returned when a spec has no process entry.
	ErrNoProcess = &Error{Kind: Spec, Detail: "no process in spec"}

	// ErrEmptyArgs is returned when a spec's process has an empty args list.
	ErrEmptyArgs = &Error{Kind: Spec, Detail: "process args are empty"}

	// ErrNoRuntimeDir is returned when XDG_RUNTIME_DIR cannot be resolved.
	ErrNoRuntimeDir = &Error{Kind: IO, Detail: "unknown runtime dir"}

	// ErrRendezvousTimeout is returned when the sandbox's wait for the
	// start-FIFO command exceeds five seconds.
	ErrRendezvousTimeout = &Error{Kind: RendezvousTimeout, Detail: "timed out waiting for start command"}
)
