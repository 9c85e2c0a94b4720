//go:build cgo && !nogtk

package gtkui

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"go.klb.dev/clipqture/internal/history"
	"go.klb.dev/clipqture/internal/menu"
)

func init() {
	// GTK must be driven from the thread that initialised it.
	runtime.LockOSThread()
}

// Presenter shows menus as GTK popups at the pointer.
type Presenter struct {
	mu      sync.Mutex
	current *gtk.Menu // keeps the visible popup reachable
}

// New initialises GTK. It fails when no display is reachable.
func New() (*Presenter, error) {
	if err := gtk.InitCheck(nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Presenter{}, nil
}

func (p *Presenter) Name() string { return "gtk" }

// Show queues m for display on the GTK thread.
func (p *Presenter) Show(m menu.Menu) {
	glib.IdleAdd(func() bool {
		if err := p.popup(m); err != nil {
			slog.Error("menu popup failed", "err", err)
		}
		return false
	})
}

// Run runs the GTK main loop until ctx is done.
func (p *Presenter) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		glib.IdleAdd(func() bool {
			gtk.MainQuit()
			return false
		})
	}()
	gtk.Main()
	return nil
}

func (p *Presenter) popup(m menu.Menu) error {
	w, err := gtk.MenuNew()
	if err != nil {
		return err
	}
	for _, it := range m.Items {
		mi, err := menuItem(it)
		if err != nil {
			return err
		}
		w.Append(mi)
	}
	w.ShowAll()

	p.mu.Lock()
	if p.current != nil {
		p.current.Destroy()
	}
	p.current = w
	p.mu.Unlock()

	w.PopupAtPointer(nil)
	return nil
}

func menuItem(it menu.Item) (gtk.IMenuItem, error) {
	if it.Separator {
		return gtk.SeparatorMenuItemNew()
	}

	item, err := gtk.MenuItemNew()
	if err != nil {
		return nil, err
	}
	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 6)
	if err != nil {
		return nil, err
	}
	if img := iconImage(it.Icon); img != nil {
		box.PackStart(img, false, false, 0)
	}
	label, err := gtk.LabelNew(it.Label)
	if err != nil {
		return nil, err
	}
	label.SetXAlign(0)
	box.PackStart(label, true, true, 0)
	item.Add(box)

	if it.Disabled {
		item.SetSensitive(false)
	}
	if it.Activate != nil {
		activate := it.Activate
		item.Connect("activate", func() { activate() })
	}
	return item, nil
}

// iconImage returns nil when the icon cannot be rendered.
func iconImage(icon history.Icon) *gtk.Image {
	switch ic := icon.(type) {
	case history.ThemeIcon:
		img, err := gtk.ImageNewFromIconName(string(ic), gtk.ICON_SIZE_MENU)
		if err != nil {
			return nil
		}
		return img
	case history.BitmapIcon:
		pb, err := pixbuf(ic)
		if err != nil {
			slog.Debug("bitmap icon not loaded", "err", err)
			return nil
		}
		img, err := gtk.ImageNewFromPixbuf(pb)
		if err != nil {
			return nil
		}
		return img
	}
	return nil
}

func pixbuf(ic history.BitmapIcon) (*gdk.Pixbuf, error) {
	data, err := EncodePNG(ic)
	if err != nil {
		return nil, err
	}
	loader, err := gdk.PixbufLoaderNew()
	if err != nil {
		return nil, err
	}
	if _, err := loader.Write(data); err != nil {
		loader.Close()
		return nil, err
	}
	if err := loader.Close(); err != nil {
		return nil, err
	}
	return loader.GetPixbuf()
}
