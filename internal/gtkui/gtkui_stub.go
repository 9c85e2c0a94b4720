//go:build !cgo || nogtk

package gtkui

import (
	"context"

	"go.klb.dev/clipqture/internal/menu"
)

// Presenter is never constructed in this build.
type Presenter struct{}

func New() (*Presenter, error) { return nil, ErrUnavailable }

func (p *Presenter) Name() string { return "gtk (disabled)" }

func (p *Presenter) Show(menu.Menu) {}

func (p *Presenter) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
