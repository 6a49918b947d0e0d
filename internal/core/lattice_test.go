package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/core"
)

// latticeCopy is copyFirst with a lattice adapter.
type latticeCopy struct{ copyFirst }

func (latticeCopy) ObservationNeighbors() []core.Offset { return core.MooreOffsets() }

func (r latticeCopy) Pipeline(k core.Kernel, input core.Image) (*core.Pipeline, error) {
	p, err := core.NewPipeline("copy", []byte("shader"), k, input, r.ObservationNeighbors())
	if err != nil {
		return nil, err
	}
	p.Params["States"] = float32(2)
	return p, nil
}

// indexDevice returns the output cell index as the cell value.
type indexDevice struct {
	last *core.Pipeline
	err  error
}

func (d *indexDevice) Dispatch(p *core.Pipeline) (core.Image, error) {
	d.last = p
	if d.err != nil {
		return core.Image{}, d.err
	}
	out := core.Image{Width: p.OutputWidth, Height: p.OutputHeight}
	out.Data = make([]float32, out.Len())
	for i := range out.Data {
		out.Data[i] = float32(i)
	}
	return out, nil
}

func TestComputeSyncGPUCropRemapsByModulo(t *testing.T) {
	g, err := core.NewGrid(core.States(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15), 4, 4, nil)
	require.NoError(t, err)
	dev := &indexDevice{}
	sys := core.New(g, latticeCopy{})

	require.NoError(t, sys.ComputeSyncGPU(dev))

	p := dev.last
	require.NotNil(t, p)
	assert.Equal(t, 2, p.OutputWidth)
	assert.Equal(t, 2, p.OutputHeight)
	assert.Equal(t, core.Offset{DX: 1, DY: 1}, p.Shift)
	assert.Equal(t, core.MooreOffsets(), p.Offsets)
	assert.Equal(t, float32(4), p.Params["Width"])
	assert.Equal(t, float32(8), p.Params["Neighbors"])
	assert.Equal(t, float32(2), p.Params["States"])
	assert.Equal(t, float32(15), p.Input.Data[15])
	assert.Equal(t, latticeCopy{}, p.Reference)

	got := sys.SpaceState()
	require.Len(t, got, 16)
	for i, v := range got {
		assert.Equal(t, core.State(i%4), v, "node %d", i)
	}
	assert.Equal(t, uint64(1), sys.Generation())
}

func TestComputeSyncGPUWrapKeepsFullLattice(t *testing.T) {
	g, err := core.NewGrid(make([]core.State, 12), 4, 3, nil)
	require.NoError(t, err)
	dev := &indexDevice{}
	sys := core.New(g, latticeCopy{}, core.WithBorder(core.BorderWrap))

	require.NoError(t, sys.ComputeSyncGPU(dev))

	assert.Equal(t, 4, dev.last.OutputWidth)
	assert.Equal(t, 3, dev.last.OutputHeight)
	assert.Equal(t, core.Offset{}, dev.last.Shift)
	for i, v := range sys.SpaceState() {
		assert.Equal(t, core.State(i), v)
	}
}

func TestComputeSyncGPUPreconditions(t *testing.T) {
	ring, err := core.NewRing(make([]core.State, 8), nil)
	require.NoError(t, err)
	err = core.New(ring, latticeCopy{}).ComputeSyncGPU(&indexDevice{})
	require.ErrorIs(t, err, core.ErrNotLattice)
	assert.True(t, core.IsPrecondition(err))

	plain, err := core.NewHypergraph(make([]core.State, 4), nil, struct{}{})
	require.NoError(t, err)
	err = core.New(plain, latticeCopy{}).ComputeSyncGPU(&indexDevice{})
	require.ErrorIs(t, err, core.ErrNotLattice)

	err = core.New(newGrid(t, 4, 4), copyFirst{}).ComputeSyncGPU(&indexDevice{})
	require.ErrorIs(t, err, core.ErrNoLatticeRule)

	err = core.New(newGrid(t, 2, 2), latticeCopy{}).ComputeSyncGPU(&indexDevice{})
	require.ErrorIs(t, err, core.ErrNotLattice, "2x2 lattice is smaller than the kernel")
}

func TestComputeSyncGPUDeviceError(t *testing.T) {
	boom := errors.New("lost device")
	g := newGrid(t, 4, 4)
	before := append([]core.State(nil), g.Nodes()...)
	sys := core.New(g, latticeCopy{})

	err := sys.ComputeSyncGPU(&indexDevice{err: boom})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, sys.SpaceState())
	assert.Zero(t, sys.Generation())
}

func TestKernelGeometry(t *testing.T) {
	k := core.Accumulation()
	w, h := k.OutputSize(10, 6)
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, core.Offset{DX: 1, DY: 1}, k.Shift())
	assert.Equal(t, float32(0), k.Data[4], "centre cell is not accumulated")

	k.Border = core.BorderWrap
	w, h = k.OutputSize(10, 6)
	assert.Equal(t, 10, w)
	assert.Equal(t, 6, h)
}
