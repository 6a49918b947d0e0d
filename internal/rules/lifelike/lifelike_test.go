package lifelike

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/core"
	"gpca/internal/render"
)

func glider(t *testing.T) *core.Hypergraph[core.Size] {
	t.Helper()
	g, err := core.NewGrid(make([]core.State, 16*16), 16, 16, nil)
	require.NoError(t, err)
	size := g.Payload()
	nodes := make([]core.State, g.Len())
	for _, p := range [][2]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}} {
		nodes[size.Index(p[0], p[1])] = 1
	}
	require.NoError(t, g.UpdateNodes(nodes))
	return g
}

func TestGliderTranslatesAfterPeriod(t *testing.T) {
	g := glider(t)
	start := g.Nodes()
	size := g.Payload()
	sys := core.New(g, New(DefaultConfig()), core.WithWorkers(4))

	for i := 0; i < 4; i++ {
		require.NoError(t, sys.ComputeSync())
	}

	got := sys.SpaceState()
	for i, v := range start {
		x, y := size.Coords(i)
		nx, ny := size.Wrap(x+1, y+1)
		assert.Equal(t, v, got[size.Index(nx, ny)], "cell (%d,%d)", x, y)
	}

	gold := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	gold.Assert(t, "glider", []byte(render.ASCII(got, size.W, size.H)))
}

func TestBlinkerOscillation(t *testing.T) {
	g, err := core.NewGrid(make([]core.State, 25), 5, 5, nil)
	require.NoError(t, err)
	size := g.Payload()
	nodes := make([]core.State, 25)
	for y := 1; y <= 3; y++ {
		nodes[size.Index(2, y)] = 1
	}
	require.NoError(t, g.UpdateNodes(nodes))
	sys := core.New(g, New(DefaultConfig()))

	require.NoError(t, sys.ComputeSync())
	want := make([]core.State, 25)
	for x := 1; x <= 3; x++ {
		want[size.Index(x, 2)] = 1
	}
	assert.Equal(t, want, sys.SpaceState())

	require.NoError(t, sys.ComputeSync())
	assert.Equal(t, nodes, sys.SpaceState())
}

func TestParseRule(t *testing.T) {
	b, s, err := ParseRule("B36/S23")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, b.Counts())
	assert.Equal(t, []int{2, 3}, s.Counts())
	assert.Equal(t, "B36/S23", FormatRule(b, s))

	b, s, err = ParseRule("s/b2")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, b.Counts())
	assert.Empty(t, s.Counts())

	for _, bad := range []string{"", "B3", "B9/S23", "X3/S23", "B3/S2a"} {
		_, _, err := ParseRule(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromMap(t *testing.T) {
	assert.Equal(t, "B3/S23", FromMap(nil).String())
	assert.Equal(t, "B2/S", FromMap(map[string]string{"rule": "B2/S"}).String())
	assert.Equal(t, "B36/S23", FromMap(map[string]string{"birth": "3, 6"}).String())
	assert.Equal(t, "B3/S23", FromMap(map[string]string{"rule": "nonsense", "survive": "9"}).String())
}

func TestUpdateBirthBeforeSurvive(t *testing.T) {
	r := New(Config{Birth: 1 << 2, Survive: 1 << 2})
	two := core.States(1, 1, 0, 0)
	assert.Equal(t, core.State(1), r.Update(0, two, nil))
	assert.Equal(t, core.State(1), r.Update(1, two, nil))

	r = New(DefaultConfig())
	assert.Equal(t, core.State(0), r.Update(0, core.States(1, 1), nil))
	assert.Equal(t, core.State(1), r.Update(1, core.States(1, 1), nil))
	assert.Equal(t, core.State(0), r.Update(1, core.States(1), nil))
}

func TestPipelineFlags(t *testing.T) {
	r := New(DefaultConfig())
	p, err := r.Pipeline(core.Accumulation(), core.Image{Data: make([]float32, 16), Width: 4, Height: 4})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 0, 0}, p.Params["Birth"])
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 0, 0, 0, 0}, p.Params["Survive"])
}

func TestRegisteredAliases(t *testing.T) {
	for _, name := range []string{"life", "lifelike"} {
		r, err := core.Lookup(name, map[string]string{"rule": "B1/S1"})
		require.NoError(t, err)
		assert.Equal(t, name, r.(core.Describer).Name())
		assert.Equal(t, "B1/S1", r.(core.Describer).Parameters().Flatten()["rule"])
	}
}
