package menu

import (
	"context"
	"log/slog"
	"sync"
)

// Presenter renders a Menu.
type Presenter interface {
	// Name returns a human-readable name for the presenter.
	Name() string

	// Show renders m at the pointer. It must not block and may be called
	// from any goroutine.
	Show(m Menu)

	// Run owns the toolkit main loop until ctx is done. Call it from the
	// main goroutine.
	Run(ctx context.Context) error
}

// LogPresenter is the presenter used without a display. It logs the labels
// it was asked to show and remembers the last menu.
type LogPresenter struct {
	mu   sync.Mutex
	last *Menu
}

// NewLogPresenter returns a presenter that only logs.
func NewLogPresenter() *LogPresenter { return &LogPresenter{} }

func (p *LogPresenter) Name() string { return "log (headless)" }

func (p *LogPresenter) Show(m Menu) {
	p.mu.Lock()
	p.last = &m
	p.mu.Unlock()
	slog.Info("menu requested", "items", m.Labels())
}

// Last returns the most recently shown menu and whether there was one.
func (p *LogPresenter) Last() (Menu, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Menu{}, false
	}
	return *p.last, true
}

func (p *LogPresenter) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
