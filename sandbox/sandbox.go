// Package sandbox implements the clone-child lifecycle: namespace entry,
// optional PTY setup, pivot_root, the created/start rendezvous, spawning
// the payload process, and driving its status through Running to
// Stopped. It is the component the container facade constructs and
// spawns once per create(), and that re-execs itself into Execute via a
// hidden CLI subcommand once the clone lands.
package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"containr/ctrerrors"
	"containr/ocispec"
	"containr/plan"
	"containr/state"
)

// Environment variables the facade sets for the re-exec'd sandbox
// process. These carry everything Execute needs that can't travel as a
// file descriptor.
const (
	envContainerID    = "CONTAINR_SANDBOX_ID"
	envBundlePath     = "CONTAINR_SANDBOX_BUNDLE"
	envConsoleSocket  = "CONTAINR_SANDBOX_CONSOLE_SOCKET"
	reExecSubcommand  = "sandbox-init"
	fdCreatedWriter   = 3
	fdStateHandle     = 4
	fdStartFifoReader = 5
)

// Handles bundles the file descriptors and metadata the facade's create()
// needs to hand off to a freshly constructed sandbox.
type Handles struct {
	ID            string
	BundlePath    string
	ConsoleSocket string
	CreatedReader *os.File // kept by the facade
	createdWriter *os.File // handed to the child
	StateHandle   *os.File // shared with the child
	startFifoRead *os.File // handed to the child
}

// Construct performs the Sandbox's documented construction step: it
// creates the start-FIFO (before clone, so the facade can never race
// mkfifo) and the created-event pipe, and returns the handles the facade
// needs for spawn and for its own later AwaitCreated.
func Construct(id, bundlePath, consoleSocket string, stateHandle *state.Handle) (*Handles, error) {
	startReader, err := CreateStartFifo(id)
	if err != nil {
		return nil, err
	}

	createdReader, createdWriter, err := NewCreatedPipe()
	if err != nil {
		startReader.Close()
		return nil, err
	}

	return &Handles{
		ID:            id,
		BundlePath:    bundlePath,
		ConsoleSocket: consoleSocket,
		CreatedReader: createdReader,
		createdWriter: createdWriter,
		StateHandle:   stateHandle.File(),
		startFifoRead: startReader,
	}, nil
}

// Spawn clones the sandbox by re-execing the current binary into the
// hidden sandbox-init subcommand with CLONE_NEWNS set, handing it the
// created-pipe writer, the shared state file handle, and the start-FIFO
// reader as inherited file descriptors. It returns the host-visible pid.
func Spawn(h *Handles) (int, error) {
	self, err := os.Executable()
	if err != nil {
		return 0, ctrerrors.Wrap(err, ctrerrors.IO, "spawn")
	}

	cmd := exec.Command(self, reExecSubcommand)
	cmd.Env = []string{
		fmt.Sprintf("%s=%s", envContainerID, h.ID),
		fmt.Sprintf("%s=%s", envBundlePath, h.BundlePath),
		fmt.Sprintf("%s=%s", envConsoleSocket, h.ConsoleSocket),
	}
	cmd.ExtraFiles = []*os.File{h.createdWriter, h.StateHandle, h.startFifoRead}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Cloneflags: syscall.CLONE_NEWNS,
	}

	if err := cmd.Start(); err != nil {
		return 0, ctrerrors.Wrap(err, ctrerrors.IO, "spawn")
	}

	// The parent's copies of the child-only ends are no longer needed;
	// the state handle stays open since the facade still writes through it.
	h.createdWriter.Close()
	h.startFifoRead.Close()

	return cmd.Process.Pid, nil
}

// Execute runs inside the re-exec'd sandbox process. It implements the
// seven-step procedure: optional PTY setup, pivot_root, process-plan
// construction, the created/start rendezvous, and driving the payload
// through Running to Stopped.
func Execute() error {
	id := os.Getenv(envContainerID)
	bundlePath := os.Getenv(envBundlePath)
	consoleSocket := os.Getenv(envConsoleSocket)

	createdWriter := os.NewFile(fdCreatedWriter, "created-pipe-writer")
	stateHandle := state.FromFd(fdStateHandle, "state.json")
	startFifoReader := os.NewFile(fdStartFifoReader, "start-fifo-reader")

	spec, err := ocispec.Load(bundlePath)
	if err != nil {
		return err
	}

	// 1. Optional PTY setup.
	if consoleSocket != "" {
		master, _, err := setupPTY()
		if err != nil {
			return err
		}
		if err := sendConsoleFd(consoleSocket, id, master); err != nil {
			return err
		}
	}

	// 2. Pivot root.
	root, err := rootPath(specRootPath(spec))
	if err != nil {
		return err
	}
	if err := pivotRoot(root); err != nil {
		return err
	}

	// 3. Build the payload plan.
	p, err := plan.New(spec)
	if err != nil {
		return err
	}

	// 4. Dispatch created event.
	if err := DispatchCreated(createdWriter); err != nil {
		return err
	}

	// 5. Wait for start command.
	if err := WaitForStart(startFifoReader); err != nil {
		return err
	}

	// 6. Reload state through the shared handle.
	current, err := stateHandle.Reload()
	if err != nil {
		return err
	}

	// 7. Launch payload, tracking Running then Stopped.
	return runPayload(stateHandle, current, p)
}

func runPayload(stateHandle *state.Handle, current state.State, p *plan.Plan) error {
	cmd := exec.Command(p.Path, p.Args...)
	cmd.Env = p.Env
	cmd.Dir = p.Cwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return ctrerrors.WrapWithContainer(err, ctrerrors.IO, "launch-payload", current.ID)
	}

	current.Status = state.StatusRunning
	if err := stateHandle.Rewrite(current); err != nil {
		return err
	}

	waitErr := cmd.Wait()

	current.Status = state.StatusStopped
	if err := stateHandle.Rewrite(current); err != nil {
		return err
	}

	if waitErr != nil {
		return ctrerrors.WrapWithContainer(waitErr, ctrerrors.IO, "payload-exit", current.ID)
	}
	return nil
}

func specRootPath(spec *specs.Spec) string {
	if spec == nil || spec.Root == nil {
		return ""
	}
	return spec.Root.Path
}
