package core

import (
	"fmt"
	"math"
	"time"
)

// Image is a row-major float buffer, the host-side form of a lattice.
type Image struct {
	Data   []float32
	Width  int
	Height int
}

// Len reports the number of cells.
func (im Image) Len() int { return im.Width * im.Height }

// Kernel describes the square footprint of a lattice update and how the
// footprint is handled at the lattice border.
type Kernel struct {
	Data   []float32
	Size   int
	Border Border
}

// Accumulation is the 3x3 kernel summing the eight Moore neighbors.
func Accumulation() Kernel {
	return Kernel{
		Data: []float32{1, 1, 1, 1, 0, 1, 1, 1, 1},
		Size: 3,
	}
}

// OutputSize returns the dimensions produced by running k over a w x h input.
func (k Kernel) OutputSize(w, h int) (int, int) {
	if k.Border == BorderWrap {
		return w, h
	}
	crop := k.Size - 1
	return w - crop, h - crop
}

// Shift returns the input cell evaluated by output cell (0,0).
func (k Kernel) Shift() Offset {
	if k.Border == BorderWrap {
		return Offset{}
	}
	r := k.Size / 2
	return Offset{DX: r, DY: r}
}

// Pipeline carries everything a device needs to run one lattice generation:
// the shader, the input buffer, the neighbor-offsets buffer and the parameter
// uniforms. Output cell (x, y) evaluates input cell (x+Shift.DX, y+Shift.DY),
// wrapping toroidally.
type Pipeline struct {
	Label  string
	Shader []byte

	Input        Image
	OutputWidth  int
	OutputHeight int
	Shift        Offset
	Offsets      []Offset

	// Params holds rule scalars keyed by shader uniform name.
	Params map[string]any

	// Reference is the rule the shader implements. Software devices evaluate
	// it directly; GPU devices ignore it.
	Reference Rule
}

// NewPipeline sizes a pipeline for kernel k over input and fills the common
// uniforms (Width, Height, Neighbors).
func NewPipeline(label string, shader []byte, k Kernel, input Image, offsets []Offset) (*Pipeline, error) {
	ow, oh := k.OutputSize(input.Width, input.Height)
	if ow <= 0 || oh <= 0 {
		return nil, precondition("NewPipeline", fmt.Errorf("%w: %dx%d lattice smaller than %dx%d kernel", ErrNotLattice, input.Width, input.Height, k.Size, k.Size))
	}
	if len(input.Data) != input.Len() {
		return nil, precondition("NewPipeline", fmt.Errorf("%w: %d values for %dx%d image", ErrLengthMismatch, len(input.Data), input.Width, input.Height))
	}
	return &Pipeline{
		Label:        label,
		Shader:       shader,
		Input:        input,
		OutputWidth:  ow,
		OutputHeight: oh,
		Shift:        k.Shift(),
		Offsets:      offsets,
		Params: map[string]any{
			"Width":     float32(input.Width),
			"Height":    float32(input.Height),
			"Neighbors": float32(len(offsets)),
		},
	}, nil
}

// Device runs a pipeline and blocks until the result has been read back to
// host memory. Dispatch returns an owned image of OutputWidth x OutputHeight.
type Device interface {
	Dispatch(p *Pipeline) (Image, error)
}

// LatticeRule is implemented by rules that can run on a Device.
type LatticeRule interface {
	Rule
	// ObservationNeighbors lists the relative offsets the shader reads, in
	// MooreOffsets order.
	ObservationNeighbors() []Offset
	// Pipeline produces the compute resources for one generation.
	Pipeline(k Kernel, input Image) (*Pipeline, error)
}

// ComputeSyncGPU advances a 2D lattice topology by one generation on dev.
//
// The device result is redistributed over all nodes with node i taking output
// cell i modulo the output length. Under BorderCrop the output is smaller than
// the lattice, so this remap does not preserve cell identity and results
// differ from ComputeSync; BorderWrap produces one output cell per node.
func (s *System[P]) ComputeSyncGPU(dev Device) error {
	start := time.Now()
	shape, err := s.Shape()
	if err != nil {
		return err
	}
	if len(shape) != 2 {
		return precondition("ComputeSyncGPU", fmt.Errorf("%w: shape %v", ErrNotLattice, shape))
	}
	lr, ok := s.rule.(LatticeRule)
	if !ok {
		return precondition("ComputeSyncGPU", fmt.Errorf("%w: %T", ErrNoLatticeRule, s.rule))
	}

	nodes := s.space.Nodes()
	input := Image{Data: make([]float32, len(nodes)), Width: shape[0], Height: shape[1]}
	if input.Len() != len(nodes) {
		return precondition("ComputeSyncGPU", fmt.Errorf("%w: shape %v for %d nodes", ErrLengthMismatch, shape, len(nodes)))
	}
	for i, n := range nodes {
		input.Data[i] = float32(n.State())
	}

	kernel := Accumulation()
	kernel.Border = s.opts.border
	p, err := lr.Pipeline(kernel, input)
	if err != nil {
		return err
	}
	p.Reference = s.rule

	out, err := dev.Dispatch(p)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", p.Label, err)
	}
	if len(out.Data) == 0 {
		return precondition("ComputeSyncGPU", fmt.Errorf("%w: empty device result", ErrLengthMismatch))
	}

	next := make([]State, len(nodes))
	for i := range next {
		v := out.Data[i%len(out.Data)]
		next[i] = FromState(uint32(math.Round(float64(v))))
	}
	if err := s.space.UpdateNodes(next); err != nil {
		return err
	}
	s.finishTick("gpu", start)
	return nil
}
