//go:build windows

package ipc

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/windows"
)

// Windows 10 1803+ supports AF_UNIX sockets; the file lives in the user's
// temp directory.
func runtimeDir() string { return os.TempDir() }

func listenIPC(path string) (net.Listener, error) {
	return net.Listen("unix", path)
}

func dialIPC(path string) (net.Conn, error) {
	return net.Dial("unix", path)
}

func isRefused(err error) bool { return errors.Is(err, windows.WSAECONNREFUSED) }

func isAddrInUse(err error) bool { return errors.Is(err, windows.WSAEADDRINUSE) }
