package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipqture/internal/config"
	"go.klb.dev/clipqture/internal/logging"
)

// settingFlags maps command-line flags onto config file keys.
var settingFlags = map[string]string{
	"max-items":       config.KeyMaxItems,
	"max-line-length": config.KeyMaxLineLength,
	"compact":         config.KeyCompact,
	"capture-icon":    config.KeyCaptureIcon,
}

func newViper() *viper.Viper { return config.NewViper() }

// bindViper wires a command's flags into v. Setting flags are bound under
// their config keys so they win over the file and CLIPQTURE_* env vars; the
// file itself is read by loadConfig.
//
// Precedence (lowest → highest): defaults → config file → CLIPQTURE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	for flag, key := range settingFlags {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(config.Key(key), f); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}
	for _, name := range []string{"config", "no-background", "log-format", "log-level"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	return nil
}

// addSettingFlags adds one flag per config key.
func addSettingFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.Int("max-items", d.MaxItems, "number of clipboard entries to remember")
	f.Int("max-line-length", d.MaxLineLength, "characters shown per menu entry before \"...\"")
	f.Bool("compact", d.CompactDisplay, "show entries on a single line")
	f.Bool("capture-icon", d.CaptureIcon, "show the icon of the window text was copied from")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info in background, debug on a terminal)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (default: user config dir)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	foreground := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	logging.Setup(v.GetString("log-format"), v.GetString("log-level"), foreground)
}

// configPath returns --config or the default location.
func configPath(v *viper.Viper) (string, error) {
	if p := v.GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// loadConfig reads and validates the config file, writing it first if it
// does not exist.
func loadConfig(v *viper.Viper) (config.Config, string, error) {
	path, err := configPath(v)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return config.Config{}, path, err
	}
	return cfg, path, nil
}
