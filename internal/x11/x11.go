// Package x11 queries the X server for the two things clipqture needs from
// the window system: the icon of the active window (_NET_WM_ICON) and the
// list of formats the clipboard owner offers (TARGETS).
//
// Every failure here is expected on some desktops (Wayland sessions, window
// managers without EWMH, empty clipboards) and callers treat it as "no
// icon" rather than an error worth surfacing.
package x11

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// DefaultIconSize is the edge length captured icons are scaled down to.
const DefaultIconSize = 16

const targetsTimeout = 250 * time.Millisecond

// ErrNoIcon is returned when the active window has no usable icon.
var ErrNoIcon = errors.New("no window icon")

// Conn is a connection to the X server.
type Conn struct {
	x    *xgb.Conn
	root xproto.Window

	// IconSize bounds the icons returned by ActiveWindowIcon.
	IconSize int

	atomMu sync.Mutex
	atoms  map[string]xproto.Atom
	names  map[xproto.Atom]string

	selMu  sync.Mutex // one TARGETS request at a time
	selWin xproto.Window
	selCh  chan xproto.SelectionNotifyEvent
}

// Open connects to display ("" = $DISPLAY).
func Open(display string) (*Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	c := &Conn{
		x:        x,
		root:     xproto.Setup(x).DefaultScreen(x).Root,
		IconSize: DefaultIconSize,
		atoms:    make(map[string]xproto.Atom),
		names:    make(map[xproto.Atom]string),
		selCh:    make(chan xproto.SelectionNotifyEvent, 1),
	}
	go c.pump()
	return c, nil
}

// Close closes the connection.
func (c *Conn) Close() { c.x.Close() }

// pump forwards selection notifications; it is the only reader of events.
func (c *Conn) pump() {
	for {
		ev, xerr := c.x.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			slog.Debug("x11 error event", "err", xerr)
			continue
		}
		if sn, ok := ev.(xproto.SelectionNotifyEvent); ok {
			select {
			case c.selCh <- sn:
			default:
			}
		}
	}
}

func (c *Conn) atom(name string) (xproto.Atom, error) {
	c.atomMu.Lock()
	defer c.atomMu.Unlock()
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	r, err := xproto.InternAtom(c.x, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	c.atoms[name] = r.Atom
	c.names[r.Atom] = name
	return r.Atom, nil
}

func (c *Conn) atomName(a xproto.Atom) (string, error) {
	c.atomMu.Lock()
	defer c.atomMu.Unlock()
	if n, ok := c.names[a]; ok {
		return n, nil
	}
	r, err := xproto.GetAtomName(c.x, a).Reply()
	if err != nil {
		return "", err
	}
	c.names[a] = r.Name
	c.atoms[r.Name] = a
	return r.Name, nil
}

// property32 reads a whole 32-bit format property.
func (c *Conn) property32(win xproto.Window, name string, typ xproto.Atom, del bool) ([]uint32, error) {
	a, err := c.atom(name)
	if err != nil {
		return nil, err
	}
	r, err := xproto.GetProperty(c.x, del, win, a, typ, 0, math.MaxUint32/4).Reply()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	if r.Format != 32 || r.ValueLen == 0 {
		return nil, nil
	}
	return words(r.Value), nil
}

func (c *Conn) activeWindow() (xproto.Window, error) {
	v, err := c.property32(c.root, "_NET_ACTIVE_WINDOW", xproto.GetPropertyTypeAny, false)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 || v[0] == 0 {
		return 0, fmt.Errorf("%w: no active window", ErrNoIcon)
	}
	return xproto.Window(v[0]), nil
}

// ActiveWindowIcon returns the first icon of the active window, scaled to
// IconSize.
func (c *Conn) ActiveWindowIcon() (image.Image, error) {
	win, err := c.activeWindow()
	if err != nil {
		return nil, err
	}
	data, err := c.property32(win, "_NET_WM_ICON", xproto.AtomCardinal, false)
	if err != nil {
		return nil, err
	}
	icons := ParseIcons(data)
	if len(icons) == 0 {
		return nil, ErrNoIcon
	}
	return Scale(icons[0].Image(), c.IconSize), nil
}

// selectionWindow lazily creates the invisible window that receives
// converted selections. Must be called with selMu held.
func (c *Conn) selectionWindow() (xproto.Window, error) {
	if c.selWin != 0 {
		return c.selWin, nil
	}
	wid, err := xproto.NewWindowId(c.x)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(c.x, 0, wid, c.root,
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, 0, nil).Check()
	if err != nil {
		return 0, fmt.Errorf("create selection window: %w", err)
	}
	c.selWin = wid
	return wid, nil
}

// ClipboardTargets returns the formats (mostly MIME types) the current
// CLIPBOARD owner offers. It returns nil when nobody owns the clipboard.
func (c *Conn) ClipboardTargets() ([]string, error) {
	c.selMu.Lock()
	defer c.selMu.Unlock()

	win, err := c.selectionWindow()
	if err != nil {
		return nil, err
	}
	clipboard, err := c.atom("CLIPBOARD")
	if err != nil {
		return nil, err
	}
	targets, err := c.atom("TARGETS")
	if err != nil {
		return nil, err
	}
	prop, err := c.atom("CLIPQTURE_TARGETS")
	if err != nil {
		return nil, err
	}

	// discard a late answer to an earlier, timed-out request
	select {
	case <-c.selCh:
	default:
	}

	err = xproto.ConvertSelectionChecked(c.x, win, clipboard, targets, prop, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, fmt.Errorf("convert selection: %w", err)
	}

	var ev xproto.SelectionNotifyEvent
	for {
		select {
		case ev = <-c.selCh:
		case <-time.After(targetsTimeout):
			return nil, errors.New("clipboard owner did not answer TARGETS")
		}
		if ev.Requestor == win && ev.Target == targets {
			break
		}
	}
	if ev.Property == xproto.AtomNone {
		return nil, nil
	}

	atoms, err := c.property32(win, "CLIPQTURE_TARGETS", xproto.AtomAtom, true)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(atoms))
	for _, a := range atoms {
		name, err := c.atomName(xproto.Atom(a))
		if err != nil {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
