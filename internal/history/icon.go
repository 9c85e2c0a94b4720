package history

import (
	"fmt"
	"image"
)

// Icon identifies the picture shown next to an entry. It is either a
// ThemeIcon or a BitmapIcon; a nil Icon means no icon.
type Icon interface {
	// String returns a short description, e.g. "theme:edit-copy" or
	// "bitmap:16x16".
	String() string
	isIcon()
}

// ThemeIcon is a symbolic name resolved through the desktop icon theme.
type ThemeIcon string

func (t ThemeIcon) String() string { return "theme:" + string(t) }
func (ThemeIcon) isIcon()          {}

// BitmapIcon is a decoded image, typically captured from the window that
// owned the clipboard.
type BitmapIcon struct {
	Image image.Image
}

func (b BitmapIcon) String() string {
	if b.Image == nil {
		return "bitmap:0x0"
	}
	r := b.Image.Bounds()
	return fmt.Sprintf("bitmap:%dx%d", r.Dx(), r.Dy())
}

func (BitmapIcon) isIcon() {}

// Describe returns icon.String(), or "" for a nil icon.
func Describe(icon Icon) string {
	if icon == nil {
		return ""
	}
	return icon.String()
}
