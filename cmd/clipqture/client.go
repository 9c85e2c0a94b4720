package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.klb.dev/clipqture/internal/grpcservice"
	"go.klb.dev/clipqture/internal/ipc"
)

const rpcTimeout = 5 * time.Second

var errNotRunning = errors.New("clipqture is not running")

// withClient connects to the running instance and calls fn with a bounded
// context.
func withClient(fn func(context.Context, *grpcservice.Client) error) error {
	sock := ipc.SocketPath()
	if !ipc.IsRunning(sock) {
		return fmt.Errorf("%w (no instance on %s)", errNotRunning, sock)
	}
	conn, err := grpcservice.DialSocket(sock)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()
	return fn(ctx, grpcservice.NewClient(conn))
}
