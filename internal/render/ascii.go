package render

import (
	"strings"

	"gpca/internal/core"
)

const glyphs = ".#23456789abcdefghijklmnopqrstuvwxyz"

// Glyph returns the character used for state s: '.' for 0, '#' for 1, then
// digits and letters, '?' past the end.
func Glyph(s core.State) byte {
	if int(s) >= len(glyphs) {
		return '?'
	}
	return glyphs[s]
}

// ASCII renders a row-major w x h frame, one line per row. Extra states are
// ignored and missing ones render as spaces.
func ASCII(states []core.State, w, h int) string {
	var b strings.Builder
	b.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if i < len(states) {
				b.WriteByte(Glyph(states[i]))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Spacetime appends one ring generation as a row to a spacetime diagram.
func Spacetime(b *strings.Builder, states []core.State) {
	for _, s := range states {
		b.WriteByte(Glyph(s))
	}
	b.WriteByte('\n')
}
