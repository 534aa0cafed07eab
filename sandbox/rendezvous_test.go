package sandbox

import (
	"os"
	"testing"
	"time"

	"containr/ctrerrors"
)

func TestCreatedPipeRoundTrips(t *testing.T) {
	reader, writer, err := NewCreatedPipe()
	if err != nil {
		t.Fatalf("NewCreatedPipe() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- AwaitCreated(reader) }()

	if err := DispatchCreated(writer); err != nil {
		t.Fatalf("DispatchCreated() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("AwaitCreated() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitCreated() did not return")
	}
}

func TestAwaitCreatedRejectsWrongPayload(t *testing.T) {
	reader, writer, err := NewCreatedPipe()
	if err != nil {
		t.Fatalf("NewCreatedPipe() error = %v", err)
	}

	go func() {
		writer.Write([]byte("nope"))
		writer.Close()
	}()

	if err := AwaitCreated(reader); err == nil {
		t.Fatal("expected error for unexpected created-pipe payload")
	}
}

func TestStartFifoSignalAndWait(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	// Construct runtime dir manually since CreateStartFifo expects it to
	// already exist (the facade creates it in CreateNew before Construct).
	if err := os.MkdirAll(mustRuntimeDir(t, "web"), 0o700); err != nil {
		t.Fatalf("mkdir runtime dir: %v", err)
	}

	reader, err := CreateStartFifo("web")
	if err != nil {
		t.Fatalf("CreateStartFifo() error = %v", err)
	}
	defer reader.Close()

	done := make(chan error, 1)
	go func() { done <- WaitForStart(reader) }()

	time.Sleep(50 * time.Millisecond)
	if err := SignalStart("web"); err != nil {
		t.Fatalf("SignalStart() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForStart() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("WaitForStart() did not return")
	}
}

func TestWaitForStartTimesOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 5s timeout test in short mode")
	}
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if err := os.MkdirAll(mustRuntimeDir(t, "lonely"), 0o700); err != nil {
		t.Fatalf("mkdir runtime dir: %v", err)
	}

	reader, err := CreateStartFifo("lonely")
	if err != nil {
		t.Fatalf("CreateStartFifo() error = %v", err)
	}
	defer reader.Close()

	err = WaitForStart(reader)
	if !ctrerrors.IsKind(err, ctrerrors.RendezvousTimeout) {
		t.Errorf("WaitForStart() error = %v, want RendezvousTimeout", err)
	}
}

func mustRuntimeDir(t *testing.T, id string) string {
	t.Helper()
	base := os.Getenv("XDG_RUNTIME_DIR")
	return base + "/containr/" + id
}
