package gpu

import (
	"errors"
	"fmt"
	"math"

	"gpca/internal/core"
)

// Software is a host-side device. It follows the shader contract exactly
// (shift, toroidal neighbor reads, output size) but evaluates the pipeline's
// reference rule instead of compiling the shader.
type Software struct{}

// NewSoftware returns a software device.
func NewSoftware() *Software { return &Software{} }

// Dispatch implements core.Device.
func (Software) Dispatch(p *core.Pipeline) (core.Image, error) {
	if p.Reference == nil {
		return core.Image{}, errors.New("software device needs a reference rule")
	}
	in := p.Input
	if len(in.Data) != in.Len() {
		return core.Image{}, fmt.Errorf("%w: %d values for %dx%d input", core.ErrLengthMismatch, len(in.Data), in.Width, in.Height)
	}
	size := core.Size{W: in.Width, H: in.Height}
	out := core.Image{Width: p.OutputWidth, Height: p.OutputHeight}
	out.Data = make([]float32, out.Len())

	at := func(x, y int) core.State {
		x, y = size.Wrap(x, y)
		return core.FromState(uint32(math.Round(float64(in.Data[size.Index(x, y)]))))
	}
	nbrs := make([]core.State, len(p.Offsets))
	for oy := 0; oy < out.Height; oy++ {
		for ox := 0; ox < out.Width; ox++ {
			x, y := ox+p.Shift.DX, oy+p.Shift.DY
			for i, o := range p.Offsets {
				nbrs[i] = at(x+o.DX, y+o.DY)
			}
			next := p.Reference.Update(at(x, y), nbrs, nil)
			out.Data[oy*out.Width+ox] = float32(next.State())
		}
	}
	return out, nil
}
