//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

func runtimeDir() string {
	// Linux: prefer XDG_RUNTIME_DIR
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	if dir := fmt.Sprintf("/run/user/%d", unix.Getuid()); isDir(dir) {
		return dir
	}
	// macOS / fallback
	return os.TempDir()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func listenIPC(path string) (net.Listener, error) {
	return net.Listen("unix", path)
}

func dialIPC(path string) (net.Conn, error) {
	return net.Dial("unix", path)
}

func isRefused(err error) bool { return errors.Is(err, unix.ECONNREFUSED) }

func isAddrInUse(err error) bool { return errors.Is(err, unix.EADDRINUSE) }
