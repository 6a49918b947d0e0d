package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/core"
)

func TestASCII(t *testing.T) {
	got := ASCII(core.States(0, 1, 2, 0, 40, 1), 3, 2)
	assert.Equal(t, ".#2\n.?#\n", got)

	assert.Equal(t, "..\n  \n", ASCII(core.States(0, 0), 2, 2))
}

func TestSpacetime(t *testing.T) {
	var b strings.Builder
	Spacetime(&b, core.States(0, 1, 0))
	Spacetime(&b, core.States(1, 0, 1))
	assert.Equal(t, ".#.\n#.#\n", b.String())
}

func TestPalette(t *testing.T) {
	assert.Nil(t, Palette(0))

	two := Palette(2)
	require.Len(t, two, 2)
	assert.Equal(t, color.RGBA{A: 0xff}, two[0])
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, two[1])

	many := Palette(5)
	require.Len(t, many, 5)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, many[1], "first hue is red")
	seen := map[color.RGBA]bool{}
	for _, c := range many {
		assert.Equal(t, uint8(0xff), c.A)
		assert.False(t, seen[c], "palette colors must be distinct")
		seen[c] = true
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 12)
	FillPaletteRGBA(buf, core.States(0, 1, 7), pal)
	assert.Equal(t, []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}, buf)

	FillPaletteRGBA(buf, core.States(0, 1, 7), nil)
	assert.Equal(t, make([]byte, 12), buf)
}
