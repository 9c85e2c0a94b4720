//go:build !cgo && !windows

package clip

import "log/slog"

// New returns the headless backend: golang.design/x/clipboard needs cgo
// outside Windows.
func New() Backend {
	slog.Warn("built without cgo, clipboard unavailable, running headless")
	return NewHeadless()
}
