package sandbox

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"containr/ctrerrors"
	"containr/runtimedir"
)

const (
	createdEventPayload = "created"
	startCommandPayload = "start"

	// startFifoPollTimeoutMillis bounds how long the sandbox waits for the
	// facade to open the start-FIFO for writing.
	startFifoPollTimeoutMillis = 5000
)

// CreateStartFifo makes the start-FIFO in the container's runtime
// directory and opens it for reading in non-blocking mode, so the open
// succeeds immediately regardless of whether a writer exists yet. Doing
// this before clone lets the facade's later start() race freely against
// the sandbox without an mkfifo race.
func CreateStartFifo(id string) (*os.File, error) {
	path, err := runtimedir.StartFifoPath(id)
	if err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "construct-sandbox", id)
	}

	if err := unix.Mkfifo(path, 0o600); err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "construct-sandbox", id)
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, ctrerrors.WrapWithContainer(err, ctrerrors.IO, "construct-sandbox", id)
	}

	return os.NewFile(uintptr(fd), path), nil
}

// SignalStart opens the container's start-FIFO for writing and writes the
// start command. This is the facade's entire start() operation.
func SignalStart(id string) error {
	path, err := runtimedir.StartFifoPath(id)
	if err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "start", id)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "start", id)
	}
	defer f.Close()

	if _, err := f.Write([]byte(startCommandPayload)); err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "start", id)
	}

	return nil
}

// WaitForStart polls fifoReader for readability with a 5-second timeout,
// then switches it to blocking mode and reads to EOF, failing if the
// bytes read don't equal the expected start command.
func WaitForStart(fifoReader *os.File) error {
	fd := int(fifoReader.Fd())

	pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pollFds, startFifoPollTimeoutMillis)
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "wait-for-start")
	}
	if n == 0 {
		return ctrerrors.ErrRendezvousTimeout
	}

	if err := unix.SetNonblock(fd, false); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "wait-for-start")
	}

	data, err := io.ReadAll(fifoReader)
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "wait-for-start")
	}
	if !bytes.Equal(data, []byte(startCommandPayload)) {
		return ctrerrors.New(ctrerrors.IO, "wait-for-start", "unexpected start-fifo payload")
	}

	return nil
}

// NewCreatedPipe creates the anonymous pipe the sandbox uses to report
// that setup is complete. The facade keeps the reader; the writer is
// handed to the sandbox across the clone boundary.
func NewCreatedPipe() (reader, writer *os.File, err error) {
	reader, writer, err = os.Pipe()
	if err != nil {
		return nil, nil, ctrerrors.Wrap(err, ctrerrors.IO, "construct-sandbox")
	}
	return reader, writer, nil
}

// DispatchCreated writes the created-event payload and closes the
// writer, releasing the facade from its read-to-EOF wait.
func DispatchCreated(writer *os.File) error {
	defer writer.Close()
	if _, err := writer.Write([]byte(createdEventPayload)); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "dispatch-created")
	}
	return nil
}

// AwaitCreated reads the created-event pipe to EOF and validates the
// payload. This is the facade's blocking step between spawning the
// sandbox and persisting status=Created.
func AwaitCreated(reader *os.File) error {
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "await-created")
	}
	if !bytes.Equal(data, []byte(createdEventPayload)) {
		return ctrerrors.New(ctrerrors.IO, "await-created", "sandbox did not report created")
	}
	return nil
}
