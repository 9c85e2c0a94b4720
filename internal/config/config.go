// Package config loads the clipqture settings from the per-user INI file.
//
// The file lives at {user-config-dir}/clipqture/clipqture.conf and holds a
// single [clipqture] section. A missing file is created with the defaults and
// explanatory comments; missing keys keep their defaults; malformed values
// are an error.
//
// Precedence (lowest → highest): defaults → config file → CLIPQTURE_* env vars → flags
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Section is the INI section holding every key.
const Section = "clipqture"

// Keys as they appear in the config file.
const (
	KeyMaxItems      = "max_items"
	KeyMaxLineLength = "max_item_line_length"
	KeyCompact       = "old_klipper_behaviour"
	KeyCaptureIcon   = "capture_window_icon"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the immutable runtime configuration.
type Config struct {
	MaxItems       int  `mapstructure:"max_items"`
	MaxLineLength  int  `mapstructure:"max_item_line_length"`
	CompactDisplay bool `mapstructure:"old_klipper_behaviour"`
	CaptureIcon    bool `mapstructure:"capture_window_icon"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxItems:       10,
		MaxLineLength:  150,
		CompactDisplay: true,
		CaptureIcon:    true,
	}
}

// Validate checks the numeric limits.
func (c Config) Validate() error {
	if c.MaxItems <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyMaxItems, c.MaxItems)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyMaxLineLength, c.MaxLineLength)
	}
	return nil
}

// DefaultPath returns {user-config-dir}/clipqture/clipqture.conf.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "clipqture", "clipqture.conf"), nil
}

// Key returns the dotted viper key for name, for binding flags.
func Key(name string) string { return Section + "." + name }

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(Key(KeyMaxItems), d.MaxItems)
	v.SetDefault(Key(KeyMaxLineLength), d.MaxLineLength)
	v.SetDefault(Key(KeyCompact), d.CompactDisplay)
	v.SetDefault(Key(KeyCaptureIcon), d.CaptureIcon)
}

// Load reads path into v (writing the defaults first if the file does not
// exist) and returns the validated Config. v should come from NewViper; flags
// bound to it under Key(...) take precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	created, err := EnsureFile(path)
	if err != nil {
		return Config{}, err
	}
	if created {
		slog.Info("wrote default config", "path", path)
	}

	SetDefaults(v)

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	v.SetConfigType("ini")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	// CLIPQTURE_MAX_ITEMS rather than CLIPQTURE_CLIPQTURE.MAX_ITEMS
	v.SetEnvPrefix("CLIPQTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(strings.ToUpper(Section)+".", "", ".", "_"))
	v.AutomaticEnv()

	var file struct {
		Clipqture Config `mapstructure:"clipqture"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := file.Clipqture.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return file.Clipqture, nil
}

// EnsureFile writes the default config to path when no file exists there.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: %w", err)
	}
	if err := WriteDefaults(path); err != nil {
		return false, err
	}
	return true, nil
}

// WriteDefaults writes the built-in settings to path with a comment above
// every key.
func WriteDefaults(path string) error {
	d := Default()
	f := ini.Empty()
	sec, err := f.NewSection(Section)
	if err != nil {
		return err
	}
	sec.Comment = "# clipqture settings. Delete this file to restore the defaults."

	keys := []struct {
		name, value, comment string
	}{
		{KeyMaxItems, fmt.Sprint(d.MaxItems), "# Number of clipboard entries to remember."},
		{KeyMaxLineLength, fmt.Sprint(d.MaxLineLength), "# Characters shown per menu entry before it is cut with \"...\"."},
		{KeyCompact, fmt.Sprint(d.CompactDisplay), "# Show every entry on a single line, collapsing newlines and repeated spaces."},
		{KeyCaptureIcon, fmt.Sprint(d.CaptureIcon), "# Show the icon of the window the text was copied from (X11 only)."},
	}
	for _, k := range keys {
		ik, err := sec.NewKey(k.name, k.value)
		if err != nil {
			return err
		}
		ik.Comment = k.comment
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
