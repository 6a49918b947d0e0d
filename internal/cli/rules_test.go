package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesListing(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRulesCommand(&RootOptions{})
	cmd.SetOut(buf)
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "cyclic       states=3 lattice=true states=3 threshold=3\n")
	assert.Contains(t, out, "life         states=2 lattice=true rule=B3/S23\n")
	assert.Contains(t, out, "elementary   states=2 lattice=false rule=110\n")
	assert.Contains(t, out, "briansbrain  states=3 lattice=false\n")
}
