package sandbox

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSendConsoleFdPayloadAndRights(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "console.sock")

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	masterR, masterW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer masterR.Close()
	defer masterW.Close()

	accepted := make(chan struct {
		payload terminalRequest
		nfds    int
		err     error
	}, 1)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			accepted <- struct {
				payload terminalRequest
				nfds    int
				err     error
			}{err: err}
			return
		}
		defer conn.Close()

		unixConn := conn.(*net.UnixConn)
		raw, err := unixConn.File()
		if err != nil {
			accepted <- struct {
				payload terminalRequest
				nfds    int
				err     error
			}{err: err}
			return
		}
		defer raw.Close()

		buf := make([]byte, 256)
		oob := make([]byte, 64)
		n, oobn, _, _, err := unix.Recvmsg(int(raw.Fd()), buf, oob, 0)
		if err != nil {
			accepted <- struct {
				payload terminalRequest
				nfds    int
				err     error
			}{err: err}
			return
		}

		var req terminalRequest
		jsonErr := json.Unmarshal(buf[:n], &req)

		scms, _ := unix.ParseSocketControlMessage(oob[:oobn])
		fds := 0
		for _, scm := range scms {
			parsed, _ := unix.ParseUnixRights(&scm)
			fds += len(parsed)
		}

		accepted <- struct {
			payload terminalRequest
			nfds    int
			err     error
		}{payload: req, nfds: fds, err: jsonErr}
	}()

	if err := sendConsoleFd(socketPath, "c2", masterW); err != nil {
		t.Fatalf("sendConsoleFd() error = %v", err)
	}

	result := <-accepted
	if result.err != nil {
		t.Fatalf("receiver error: %v", result.err)
	}
	if result.payload.Type != "terminal" || result.payload.Container != "c2" {
		t.Errorf("payload = %+v, want type=terminal container=c2", result.payload)
	}
	if result.nfds != 1 {
		t.Errorf("received %d fds, want 1", result.nfds)
	}
}
