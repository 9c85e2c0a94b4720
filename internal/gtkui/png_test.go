package gtkui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipqture/internal/history"
)

func TestEncodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	data, err := EncodePNG(history.BitmapIcon{Image: src})
	require.NoError(t, err)

	got, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	r, g, b, a := got.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0x1010, 0x2020, 0x3030, 0xffff}, []uint32{r, g, b, a})
}

func TestEncodePNGEmpty(t *testing.T) {
	_, err := EncodePNG(history.BitmapIcon{})
	assert.Error(t, err)
}
