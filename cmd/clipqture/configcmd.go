package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipqture/internal/config"
)

func newConfigCmd() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config file location and effective settings",
		Long: `Prints where clipqture reads its settings from and the values in effect
after applying the file, CLIPQTURE_* env vars and flags. The file is created
with commented defaults if it does not exist yet.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runConfig(cmd.OutOrStdout(), v) },
	}
	addSettingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runConfig(out io.Writer, v *viper.Viper) error {
	cfg, path, err := loadConfig(v)
	if err != nil {
		return err
	}
	printConfig(out, path, cfg)
	return nil
}

func printConfig(out io.Writer, path string, cfg config.Config) {
	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "File:\t%s\n", path)
	_, _ = fmt.Fprintf(tw, "[%s]\t\n", config.Section)
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", config.KeyMaxItems, cfg.MaxItems)
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", config.KeyMaxLineLength, cfg.MaxLineLength)
	_, _ = fmt.Fprintf(tw, "%s\t%t\n", config.KeyCompact, cfg.CompactDisplay)
	_, _ = fmt.Fprintf(tw, "%s\t%t\n", config.KeyCaptureIcon, cfg.CaptureIcon)
	_ = tw.Flush()
}
