package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go.klb.dev/clipqture/internal/grpcservice"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the clipboard history of the running instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, c *grpcservice.Client) error {
				if err := c.Clear(ctx); err != nil {
					return fmt.Errorf("clear: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			})
		},
	}
}
