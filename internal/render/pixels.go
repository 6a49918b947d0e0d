package render

import (
	"image/color"
	"math"

	"gpca/internal/core"
)

// FillPaletteRGBA converts cell states into RGBA pixels using a palette.
// States beyond the palette clamp to its last entry. When the palette is
// empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, cells []core.State, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Palette returns n opaque colors. State 0 is black; with two states state 1
// is white, otherwise the remaining states are spread around the hue circle.
func Palette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	out[0] = color.RGBA{A: 0xff}
	if n == 2 {
		out[1] = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		return out
	}
	for i := 1; i < n; i++ {
		out[i] = hue(float64(i-1) / float64(n-1))
	}
	return out
}

// hue converts h in [0,1) to a fully saturated color.
func hue(h float64) color.RGBA {
	h6 := h * 6
	x := 1 - math.Abs(math.Mod(h6, 2)-1)
	var r, g, b float64
	switch int(h6) % 6 {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}
