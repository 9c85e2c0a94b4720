// Package clip provides text access to the system clipboard and change
// notification. Build constraints select the implementation:
//
//	clip_poll.go:     golang.design/x/clipboard, polling (cgo builds and Windows)
//	clip_nocgo.go:    headless stub when the clipboard library cannot be built
//	clip_headless.go: no-op backend, also used when the display is unavailable
package clip

// Backend is the interface that all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current clipboard text, "" if the clipboard is
	// empty or holds no text.
	ReadText() (string, error)

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// Watch returns a channel that receives a signal whenever the clipboard
	// text changes. The channel is never closed. The caller should call
	// ReadText when it receives from the channel.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}
