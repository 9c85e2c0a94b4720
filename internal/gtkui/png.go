// Package gtkui renders menus as GTK 3 popups. Builds without cgo, or with
// the nogtk tag, get a stub whose New always fails with ErrUnavailable.
package gtkui

import (
	"bytes"
	"errors"
	"image/png"

	"go.klb.dev/clipqture/internal/history"
)

// ErrUnavailable is returned by New when GTK cannot be used.
var ErrUnavailable = errors.New("gtk unavailable")

// EncodePNG encodes a bitmap icon for gdk's pixbuf loader.
func EncodePNG(ic history.BitmapIcon) ([]byte, error) {
	if ic.Image == nil {
		return nil, errors.New("empty bitmap icon")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, ic.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
