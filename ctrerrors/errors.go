// Package ctrerrors provides typed error handling for the containr runtime.
//
// Every failure a component raises is classified into one of five kinds.
// Callers inspect the kind with errors.As or IsKind rather than matching on
// message text.
package ctrerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a containr error.
type Kind int

const (
	// Spec indicates the OCI bundle config could not be loaded or lacks a
	// required field.
	Spec Kind = iota
	// IO indicates a filesystem or pipe operation failed.
	IO
	// Precondition indicates an operation was attempted against a container
	// in the wrong lifecycle state.
	Precondition
	// RendezvousTimeout indicates the sandbox gave up waiting for the start
	// command on the start-FIFO.
	RendezvousTimeout
	// NotFound indicates the referenced container does not exist.
	NotFound
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case Spec:
		return "spec error"
	case IO:
		return "io error"
	case Precondition:
		return "precondition error"
	case RendezvousTimeout:
		return "rendezvous timeout"
	case NotFound:
		return "not found"
	default:
		return "unknown error"
	}
}

// Error is the error type every containr component returns.
type Error struct {
	// Op is the operation that failed, e.g. "create", "start".
	Op string
	// Container is the container ID, if applicable.
	Container string
	// Err is the underlying error, if any.
	Err error
	// Kind classifies the failure.
	Kind Kind
	// Detail adds context beyond the kind's generic description.
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	if e.Container != "" {
		msg = fmt.Sprintf("container %s: ", e.Container)
	}
	if e.Op != "" {
		msg += fmt.Sprintf("%s: ", e.Op)
	}
	if e.Detail != "" {
		msg += e.Detail
	} else {
		msg += e.Kind.String()
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error with the same Kind, so errors.Is(err,
// &Error{Kind: NotFound}) works without caring about Op/Container/Detail.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an Error with no wrapped cause.
func New(kind Kind, op, detail string) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail}
}

// Wrap attaches an operation and kind to an underlying error.
func Wrap(err error, kind Kind, op string) *Error {
	return &Error{Op: op, Err: err, Kind: kind}
}

// WrapWithContainer is Wrap plus the container ID the failure belongs to.
func WrapWithContainer(err error, kind Kind, op, containerID string) *Error {
	return &Error{Op: op, Container: containerID, Err: err, Kind: kind}
}

// WrapWithDetail is Wrap plus a human-readable detail string.
func WrapWithDetail(err error, kind Kind, op, detail string) *Error {
	return &Error{Op: op, Err: err, Kind: kind, Detail: detail}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the kind of err if it is, or wraps, an *Error.
func GetKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Re-exported for callers that only need the stdlib semantics.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
