package cyclic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/core"
)

func TestCenterAdvancesOnceThenHolds(t *testing.T) {
	nodes := make([]core.State, 9)
	nodes[1] = 1
	g, err := core.NewGrid(nodes, 3, 3, nil)
	require.NoError(t, err)
	center := g.Payload().Index(1, 1)

	sys := core.New(g, New(Config{States: 3, Threshold: 1}))

	require.NoError(t, sys.ComputeSync())
	assert.Equal(t, core.State(1), sys.SpaceState()[center])

	require.NoError(t, sys.ComputeSync())
	assert.Equal(t, core.State(1), sys.SpaceState()[center], "no neighbor holds 2 yet")
}

func TestUpdateThreshold(t *testing.T) {
	r := New(Config{States: 4, Threshold: 2})

	assert.Equal(t, core.State(2), r.Update(1, core.States(2, 2, 0), nil))
	assert.Equal(t, core.State(1), r.Update(1, core.States(2, 0, 0), nil))
	assert.Equal(t, core.State(0), r.Update(3, core.States(0, 0), nil), "successor wraps to zero")
	assert.Equal(t, uint32(4), r.States())
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"states": "5", "threshold": "2"})
	assert.Equal(t, Config{States: 5, Threshold: 2}, c)

	c = FromMap(map[string]string{"states": "1", "threshold": "x"})
	assert.Equal(t, DefaultConfig(), c, "invalid values keep defaults")

	assert.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestPipelineUniforms(t *testing.T) {
	r := New(Config{States: 5, Threshold: 2})
	in := core.Image{Data: make([]float32, 24), Width: 6, Height: 4}

	p, err := r.Pipeline(core.Accumulation(), in)
	require.NoError(t, err)
	assert.Equal(t, "cyclic", p.Label)
	assert.NotEmpty(t, p.Shader)
	assert.Equal(t, float32(5), p.Params["States"])
	assert.Equal(t, float32(2), p.Params["Threshold"])
	assert.Equal(t, 4, p.OutputWidth)
	assert.Equal(t, 2, p.OutputHeight)
	assert.Equal(t, core.MooreOffsets(), p.Offsets)
}

func TestRegistered(t *testing.T) {
	r, err := core.Lookup("cyclic", map[string]string{"states": "7"})
	require.NoError(t, err)
	assert.Equal(t, uint32(7), r.States())
	_, ok := r.(core.LatticeRule)
	assert.True(t, ok)
	assert.Equal(t, "7", r.(core.Describer).Parameters().Flatten()["states"])
}
