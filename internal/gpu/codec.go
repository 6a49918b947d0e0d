// Package gpu provides core.Device implementations: an ebiten device that
// runs Kage shaders (build tag ebiten) and a software device that evaluates
// a pipeline's reference rule on the host.
package gpu

import (
	"errors"
	"fmt"
	"math"

	"gpca/internal/core"
)

// ErrStateRange is returned when a state does not fit the 8-bit R channel.
var ErrStateRange = errors.New("state does not fit in 8 bits")

// maxOffsets is the length of the Offsets uniform array in the shaders.
const maxOffsets = 8

// Pack encodes an image as RGBA8 pixels, one state per pixel in the R
// channel with opaque alpha.
func Pack(im core.Image) ([]byte, error) {
	pix := make([]byte, 4*len(im.Data))
	for i, v := range im.Data {
		s := math.Round(float64(v))
		if s < 0 || s > 255 {
			return nil, fmt.Errorf("%w: %v at %d", ErrStateRange, v, i)
		}
		pix[4*i] = byte(s)
		pix[4*i+3] = 0xff
	}
	return pix, nil
}

// Unpack decodes RGBA8 pixels produced by a shader back into an image.
func Unpack(pix []byte, w, h int) core.Image {
	im := core.Image{Data: make([]float32, w*h), Width: w, Height: h}
	for i := range im.Data {
		im.Data[i] = float32(pix[4*i])
	}
	return im
}

// Crop returns the top-left w x h region of im.
func Crop(im core.Image, w, h int) core.Image {
	if w == im.Width && h == im.Height {
		return im
	}
	out := core.Image{Data: make([]float32, 0, w*h), Width: w, Height: h}
	for y := 0; y < h; y++ {
		row := y * im.Width
		out.Data = append(out.Data, im.Data[row:row+w]...)
	}
	return out
}

// Uniforms flattens a pipeline into shader uniform values: the rule params,
// Shift as a vec2 and Offsets as an [8]vec2 padded with zeros.
func Uniforms(p *core.Pipeline) (map[string]any, error) {
	if len(p.Offsets) > maxOffsets {
		return nil, fmt.Errorf("pipeline %s: %d neighbor offsets, shaders take at most %d", p.Label, len(p.Offsets), maxOffsets)
	}
	out := make(map[string]any, len(p.Params)+2)
	for k, v := range p.Params {
		out[k] = v
	}
	out["Shift"] = []float32{float32(p.Shift.DX), float32(p.Shift.DY)}
	offsets := make([]float32, 2*maxOffsets)
	for i, o := range p.Offsets {
		offsets[2*i] = float32(o.DX)
		offsets[2*i+1] = float32(o.DY)
	}
	out["Offsets"] = offsets
	return out, nil
}
