// Package ipc implements single-instance coordination over a per-user Unix
// socket.
//
// The first clipqture process binds the socket and keeps it for its whole
// life. A later invocation (typically bound to a hotkey) finds the socket,
// writes a one-byte trigger asking the running instance to show its menu, and
// exits. A socket file nobody listens on is stale and gets replaced.
//
// The same socket also carries the gRPC control service and its HTTP gateway;
// see Split.
package ipc

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
)

// SocketName is the file name of the socket inside the runtime directory.
const SocketName = "clipqture.sock"

// TriggerPayload is what a second instance writes. Its content is ignored.
var TriggerPayload = []byte("1")

// ErrAlreadyRunning is returned by Acquire when another instance owns the
// socket. The trigger has already been delivered.
var ErrAlreadyRunning = errors.New("clipqture is already running")

// SocketPath returns the socket path: $CLIPQTURE_SOCKET when set, otherwise
// clipqture.sock inside the per-user runtime directory.
func SocketPath() string {
	if s := os.Getenv("CLIPQTURE_SOCKET"); s != "" {
		return s
	}
	return filepath.Join(runtimeDir(), SocketName)
}

// IsRunning reports whether an instance appears to be listening on path.
// It does a cheap dial-and-close; no data is exchanged.
func IsRunning(path string) bool {
	c, err := dialIPC(path)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Trigger asks the instance listening on path to show its menu. It does not
// wait for any acknowledgement.
func Trigger(path string) error {
	c, err := dialIPC(path)
	if err != nil {
		return err
	}
	defer c.Close()
	if _, err := c.Write(TriggerPayload); err != nil {
		return fmt.Errorf("send trigger: %w", err)
	}
	return nil
}

// Dial connects to the socket at path.
func Dial(path string) (net.Conn, error) { return dialIPC(path) }

// Acquire makes the calling process the single running instance and returns
// the listener it now owns.
//
// If another instance answers on path, the trigger is sent to it and
// ErrAlreadyRunning is returned. A stale socket file (connection refused) is
// removed first. If binding fails because the address is in use, another
// instance won the race; it is contacted once more before giving up.
func Acquire(path string) (net.Listener, error) {
	if _, err := os.Stat(path); err == nil {
		err := Trigger(path)
		switch {
		case err == nil:
			return nil, ErrAlreadyRunning
		case isRefused(err):
			slog.Debug("removing stale socket", "path", path)
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("remove stale socket: %w", err)
			}
		default:
			return nil, fmt.Errorf("contact %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("socket dir: %w", err)
	}

	ln, err := listenIPC(path)
	if err != nil {
		if isAddrInUse(err) && Trigger(path) == nil {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	return ln, nil
}
