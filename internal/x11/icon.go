package x11

import (
	"image"

	"github.com/BurntSushi/xgb"
	xdraw "golang.org/x/image/draw"
)

// Icon is one entry of a _NET_WM_ICON property: a width×height image whose
// pixels are packed 32-bit ARGB values, row-major.
type Icon struct {
	Width, Height int
	Pixels        []uint32
}

// ParseIcons splits a _NET_WM_ICON CARDINAL array into its icons. The array
// is a sequence of width, height, width*height pixels. Parsing stops at the
// first entry that is empty or runs past the end of the data.
func ParseIcons(data []uint32) []Icon {
	var icons []Icon
	for len(data) >= 2 {
		w, h := uint64(data[0]), uint64(data[1])
		// bound before converting: a bogus header must not overflow int
		if w == 0 || h == 0 || w*h > uint64(len(data)-2) {
			break
		}
		n := int(w * h)
		icons = append(icons, Icon{Width: int(w), Height: int(h), Pixels: data[2 : 2+n]})
		data = data[2+n:]
	}
	return icons
}

// Image converts the ARGB pixels to a non-premultiplied RGBA image.
func (ic Icon) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, ic.Width, ic.Height))
	for i, p := range ic.Pixels {
		o := i * 4
		img.Pix[o+0] = uint8(p >> 16) // r
		img.Pix[o+1] = uint8(p >> 8)  // g
		img.Pix[o+2] = uint8(p)       // b
		img.Pix[o+3] = uint8(p >> 24) // a
	}
	return img
}

// Scale shrinks img so that neither side exceeds size, keeping the aspect
// ratio. Images that already fit, and size <= 0, are returned unchanged.
func Scale(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}
	nw, nh := size, size
	if w > h {
		nh = max(1, h*size/w)
	} else if h > w {
		nw = max(1, w*size/h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// words unpacks a 32-bit format property value.
func words(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = xgb.Get32(b[i*4:])
	}
	return out
}
