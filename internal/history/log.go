package history

import (
	"context"
	"log/slog"
)

const previewLen = 120

// LogRecorded logs a recorded entry at INFO (size, icon, whether it was new)
// and DEBUG (text preview up to 120 runes).
func LogRecorded(e Entry, added bool, total int) {
	slog.Info("clipboard recorded",
		"new", added,
		"chars", len([]rune(e.Text)),
		"icon", Describe(e.Icon),
		"total", total,
	)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug("clipboard entry", "preview", Preview(e.Text))
}

// Preview shortens text for log output.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLen {
		return text
	}
	return string(r[:previewLen]) + "…"
}
