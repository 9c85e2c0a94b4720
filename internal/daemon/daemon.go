// Package daemon runs the first clipqture instance: it feeds clipboard changes
// into the history and answers triggers by handing a fresh menu to the
// presenter.
package daemon

import (
	"context"
	"image"
	"log/slog"
	"slices"

	"go.klb.dev/clipqture/internal/clip"
	"go.klb.dev/clipqture/internal/config"
	"go.klb.dev/clipqture/internal/history"
	"go.klb.dev/clipqture/internal/menu"
)

// URIListType is the clipboard target offered when files are copied.
const URIListType = "text/uri-list"

// FileListIcon marks entries copied as a file list when window icons are
// not captured.
const FileListIcon = history.ThemeIcon("edit-copy")

// WindowSystem is the window-system collaborator. Both methods may fail on
// any desktop; failures only mean "no icon".
type WindowSystem interface {
	ActiveWindowIcon() (image.Image, error)
	ClipboardTargets() ([]string, error)
}

// Daemon serialises clipboard handling and menu requests on one goroutine.
type Daemon struct {
	cfg       config.Config
	store     *history.Store
	backend   clip.Backend
	ws        WindowSystem // may be nil
	presenter menu.Presenter
	triggers  <-chan struct{}
}

// New returns a Daemon. ws may be nil when no X server is reachable.
func New(
	cfg config.Config,
	store *history.Store,
	backend clip.Backend,
	ws WindowSystem,
	presenter menu.Presenter,
	triggers <-chan struct{},
) *Daemon {
	return &Daemon{
		cfg:       cfg,
		store:     store,
		backend:   backend,
		ws:        ws,
		presenter: presenter,
		triggers:  triggers,
	}
}

// Run handles clipboard changes and triggers until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	slog.Info("watching clipboard",
		"backend", d.backend.Name(),
		"presenter", d.presenter.Name(),
		"max_items", d.store.Cap(),
	)
	watch := d.backend.Watch()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watch:
			d.ClipboardChanged()
		case <-d.triggers:
			d.ShowMenu()
		}
	}
}

// ClipboardChanged records the current clipboard text.
func (d *Daemon) ClipboardChanged() {
	text, err := d.backend.ReadText()
	if err != nil {
		slog.Error("clipboard read failed", "err", err)
		return
	}
	if text == "" {
		return
	}
	e, added := d.store.Record(text, d.icon())
	history.LogRecorded(e, added, d.store.Len())
}

// icon picks the icon for a new entry: the active window's icon when
// capturing is enabled, otherwise a theme icon for copied files.
func (d *Daemon) icon() history.Icon {
	if d.ws == nil {
		return nil
	}
	if d.cfg.CaptureIcon {
		img, err := d.ws.ActiveWindowIcon()
		if err != nil || img == nil {
			slog.Debug("no window icon", "err", err)
			return nil
		}
		return history.BitmapIcon{Image: img}
	}
	targets, err := d.ws.ClipboardTargets()
	if err != nil {
		slog.Debug("clipboard targets unavailable", "err", err)
		return nil
	}
	if slices.Contains(targets, URIListType) {
		return FileListIcon
	}
	return nil
}

// MenuOptions derives label options from the configuration.
func (d *Daemon) MenuOptions() menu.Options {
	return menu.Options{
		MaxLineLength: d.cfg.MaxLineLength,
		Compact:       d.cfg.CompactDisplay,
	}
}

// Menu builds the menu for the current history.
func (d *Daemon) Menu() menu.Menu {
	return menu.Build(d.store.Entries(), d.MenuOptions(), d.selectText, d.store.Clear)
}

// ShowMenu hands the current menu to the presenter.
func (d *Daemon) ShowMenu() {
	slog.Debug("show menu", "entries", d.store.Len())
	d.presenter.Show(d.Menu())
}

func (d *Daemon) selectText(text string) {
	if err := d.backend.WriteText(text); err != nil {
		slog.Error("clipboard write failed", "err", err)
		return
	}
	slog.Debug("clipboard set from history", "preview", history.Preview(text))
}
