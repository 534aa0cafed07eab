package sandbox

import (
	"encoding/json"
	"net"
	"os"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"containr/ctrerrors"
)

// terminalRequest is the exact wire payload the console-socket protocol
// sends: a single UTF-8 JSON object, no trailing newline.
type terminalRequest struct {
	Type      string `json:"type"`
	Container string `json:"container"`
}

// setupPTY opens a new pseudoterminal, makes the sandbox a session leader
// on the slave, and dups the slave onto stdin/stdout/stderr. It returns
// the master end so sendConsoleFd can hand it to the caller.
func setupPTY() (master, slave *os.File, err error) {
	master, slave, err = pty.Open()
	if err != nil {
		return nil, nil, ctrerrors.Wrap(err, ctrerrors.IO, "setup-pty")
	}

	if _, err := unix.Setsid(); err != nil {
		master.Close()
		slave.Close()
		return nil, nil, ctrerrors.Wrap(err, ctrerrors.IO, "setup-pty")
	}

	if err := unix.IoctlSetInt(int(slave.Fd()), unix.TIOCSCTTY, 0); err != nil {
		master.Close()
		slave.Close()
		return nil, nil, ctrerrors.Wrap(err, ctrerrors.IO, "setup-pty")
	}

	for _, fd := range []uintptr{0, 1, 2} {
		if err := unix.Dup2(int(slave.Fd()), int(fd)); err != nil {
			master.Close()
			slave.Close()
			return nil, nil, ctrerrors.Wrap(err, ctrerrors.IO, "setup-pty")
		}
	}

	return master, slave, nil
}

// sendConsoleFd connects to the caller's console socket and sends the
// terminal handshake: a JSON payload naming the container, with the PTY
// master fd attached as SCM_RIGHTS ancillary data. It closes the
// connection once sent; no reply is awaited.
func sendConsoleFd(socketPath, containerID string, master *os.File) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "console-socket")
	}
	defer conn.Close()

	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return ctrerrors.New(ctrerrors.IO, "console-socket", "not a unix socket connection")
	}

	raw, err := unixConn.File()
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "console-socket")
	}
	defer raw.Close()

	payload, err := json.Marshal(terminalRequest{Type: "terminal", Container: containerID})
	if err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "console-socket")
	}

	rights := unix.UnixRights(int(master.Fd()))
	if err := unix.Sendmsg(int(raw.Fd()), payload, rights, nil, 0); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "console-socket")
	}

	return nil
}
