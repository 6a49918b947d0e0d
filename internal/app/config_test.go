package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "gpca/internal/rules"
)

func TestBindFlags(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{
		"--rule", "cyclic", "-p", "states=5", "--param", "threshold=2",
		"--width", "10", "--cache", "unbounded", "--border", "wrap",
	}))
	assert.Equal(t, "cyclic", cfg.Rule)
	assert.Equal(t, map[string]string{"states": "5", "threshold": "2"}, cfg.Params)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
	assert.Equal(t, "unbounded", cfg.Cache)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.LoadFile(filepath.Join("testdata", "run.yaml"), nil))

	assert.Equal(t, "cyclic", cfg.Rule)
	assert.Equal(t, "4", cfg.Params["states"])
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "lru", cfg.Cache)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, DeviceSoftware, cfg.Device)
	assert.InDelta(t, 0.5, cfg.Density, 1e-9)
	assert.Equal(t, 3, cfg.Scale, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoadFileKeepsExplicitFlags(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--width", "40", "-p", "states=9"}))

	require.NoError(t, cfg.LoadFile(filepath.Join("testdata", "run.yaml"), fs))
	assert.Equal(t, 40, cfg.Width, "flag wins over file")
	assert.Equal(t, 10, cfg.Height)
	assert.Equal(t, "9", cfg.Params["states"])
	assert.Equal(t, "2", cfg.Params["threshold"])
}

func TestLoadFileErrors(t *testing.T) {
	cfg := NewConfig()
	require.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o644))
	require.Error(t, cfg.LoadFile(bad, nil))
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.Rule = "nope"
	cfg.Width = 0
	cfg.Cache = "arc"
	cfg.Device = "tpu"
	cfg.Border = "mirror"
	cfg.Density = 2

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"unknown rule", "dimensions", "cache mode", "device", "border", "density"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := NewConfig()
	cfg.Params["a"] = "1"
	cp := cfg.Clone()
	cp.Params["a"] = "2"
	assert.Equal(t, "1", cfg.Params["a"])
}
