//go:build cgo || windows

package clip

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"golang.design/x/clipboard"
)

const pollInterval = 250 * time.Millisecond

// textSource is the subset of golang.design/x/clipboard used by the poller.
type textSource interface {
	Read() []byte
	Write(b []byte)
}

type systemText struct{}

func (systemText) Read() []byte   { return clipboard.Read(clipboard.FmtText) }
func (systemText) Write(b []byte) { clipboard.Write(clipboard.FmtText, b) }

type pollBackend struct {
	src      textSource
	interval time.Duration
	watchCh  chan struct{}
	done     chan struct{}
	once     sync.Once

	mu       sync.Mutex
	lastText []byte
}

// New returns the system clipboard backend, or a headless no-op backend if
// the display environment is unavailable. clipboard.Init is called here
// rather than in init() so that CLI sub-commands (show, history, clear)
// don't trigger the warning.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return NewHeadless()
	}
	return newPollBackend(systemText{}, pollInterval)
}

// newPollBackend starts polling src. The content present at start is taken
// as already seen so it does not count as a change.
func newPollBackend(src textSource, interval time.Duration) *pollBackend {
	b := &pollBackend{
		src:      src,
		interval: interval,
		watchCh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		lastText: src.Read(),
	}
	go b.poll()
	return b
}

func (b *pollBackend) Name() string { return "system clipboard (poll)" }

func (b *pollBackend) poll() {
	t := time.NewTicker(b.interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := b.src.Read()
			b.mu.Lock()
			changed := !bytes.Equal(text, b.lastText)
			if changed {
				b.lastText = text
			}
			b.mu.Unlock()
			if changed {
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *pollBackend) ReadText() (string, error) {
	return string(b.src.Read()), nil
}

func (b *pollBackend) WriteText(text string) error {
	b.src.Write([]byte(text))
	return nil
}

func (b *pollBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *pollBackend) Close()                 { b.once.Do(func() { close(b.done) }) }
