package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.klb.dev/clipqture/internal/ipc"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Pop up the history menu of the running instance",
		Long: `Sends a trigger to the running clipqture instance, which shows its menu at
the mouse pointer. Unlike running clipqture without arguments, this never
starts a new instance.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error { return runShow() },
	}
}

func runShow() error {
	sock := ipc.SocketPath()
	if !ipc.IsRunning(sock) {
		return fmt.Errorf("%w (no instance on %s)", errNotRunning, sock)
	}
	if err := ipc.Trigger(sock); err != nil {
		return fmt.Errorf("trigger: %w", err)
	}
	return nil
}
