package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/clipqture/internal/grpcservice"
)

func newHistoryCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the clipboard history of the running instance",
		Long: `Lists the entries of the running instance, most recent first, with the
label the menu shows for each. Use --json for the full text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(func(ctx context.Context, c *grpcservice.Client) error {
				h, err := c.History(ctx)
				if err != nil {
					return fmt.Errorf("history: %w", err)
				}
				if jsonOut {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(h)
				}
				printHistory(cmd.OutOrStdout(), h)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output raw JSON")
	return cmd
}

func printHistory(out io.Writer, h grpcservice.History) {
	if len(h.Entries) == 0 {
		fmt.Fprintf(out, "History is empty (keeps %d).\n", h.MaxItems)
		return
	}
	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tICON\tENTRY\n")
	_, _ = fmt.Fprintf(tw, "-\t----\t-----\n")
	for i, e := range h.Entries {
		icon := e.Icon
		if icon == "" {
			icon = "-"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, icon, e.Label)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\n%d of %d entries.\n", len(h.Entries), h.MaxItems)
}
