// clipqture: clipboard history popup.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:   "clipqture",
		Short: "Clipboard history popup",
		Long: `clipqture remembers the last few texts copied to the clipboard and shows
them in a popup menu at the mouse pointer. Choosing an entry copies it back.

The first invocation stays in the background and records the clipboard.
Running clipqture again (bind it to a hotkey) pops up the menu of the running
instance and exits immediately.

Config file (written with defaults on first run):
  $XDG_CONFIG_HOME/clipqture/clipqture.conf
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPQTURE_* env vars → flags`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:         func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	addSettingFlags(root)
	addLoggingFlags(root)
	addConfigFlag(root)

	root.AddCommand(
		newShowCmd(),
		newHistoryCmd(),
		newClearCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipqture %s\n", Version)
		},
	}
}
