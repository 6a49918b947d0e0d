package app

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"gpca/internal/cache"
	"gpca/internal/core"
)

// Device names accepted by --device.
const (
	DeviceCPU      = "cpu"
	DeviceSoftware = "software"
	DeviceGPU      = "gpu"
)

var devices = []string{DeviceCPU, DeviceSoftware, DeviceGPU}

// Config holds the parameters of one simulation run. Every field can be set
// from flags or from a YAML file.
type Config struct {
	Rule   string            `yaml:"rule"`
	Params map[string]string `yaml:"params"`

	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
	Steps  int   `yaml:"steps"`

	Workers   int    `yaml:"workers"`
	Cache     string `yaml:"cache"`
	CacheSize int    `yaml:"cache_size"`
	Device    string `yaml:"device"`
	Border    string `yaml:"border"`

	TPS     int     `yaml:"tps"`
	Scale   int     `yaml:"scale"`
	Density float64 `yaml:"density"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rule:      "life",
		Params:    map[string]string{},
		Width:     64,
		Height:    64,
		Seed:      42,
		Steps:     100,
		Cache:     string(cache.ModeNone),
		CacheSize: 4096,
		Device:    DeviceCPU,
		Border:    core.BorderCrop.String(),
		Scale:     3,
		Density:   0.3,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule to run (see `gpca rules`)")
	fs.StringToStringVarP(&c.Params, "param", "p", c.Params, "rule parameter as key=value, repeatable")
	fs.IntVar(&c.Width, "width", c.Width, "lattice width, or ring length for 1D rules")
	fs.IntVar(&c.Height, "height", c.Height, "lattice height, or history rows for 1D rules")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial state")
	fs.IntVar(&c.Steps, "steps", c.Steps, "number of generations to compute")
	fs.IntVar(&c.Workers, "workers", c.Workers, "CPU worker goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&c.Cache, "cache", c.Cache, "memo cache: none, unbounded or lru")
	fs.IntVar(&c.CacheSize, "cache-size", c.CacheSize, "entries kept by the lru cache")
	fs.StringVar(&c.Device, "device", c.Device, "compute path: cpu, software or gpu")
	fs.StringVar(&c.Border, "border", c.Border, "lattice border for device runs: crop or wrap")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 = as fast as possible)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier for the viewer")
	fs.Float64Var(&c.Density, "density", c.Density, "fraction of initially non-zero cells")
}

// LoadFile reads YAML settings from path into c. Flags already set on fs
// keep their command-line values; fs may be nil.
func (c *Config) LoadFile(path string, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	before := *c
	before.Params = cloneParams(c.Params)
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.Params == nil {
		c.Params = map[string]string{}
	}
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { c.restore(f.Name, &before) })
	}
	return nil
}

// restore copies the field bound to flag name back from prev.
func (c *Config) restore(name string, prev *Config) {
	switch name {
	case "rule":
		c.Rule = prev.Rule
	case "param":
		for k, v := range prev.Params {
			c.Params[k] = v
		}
	case "width":
		c.Width = prev.Width
	case "height":
		c.Height = prev.Height
	case "seed":
		c.Seed = prev.Seed
	case "steps":
		c.Steps = prev.Steps
	case "workers":
		c.Workers = prev.Workers
	case "cache":
		c.Cache = prev.Cache
	case "cache-size":
		c.CacheSize = prev.CacheSize
	case "device":
		c.Device = prev.Device
	case "border":
		c.Border = prev.Border
	case "tps":
		c.TPS = prev.TPS
	case "scale":
		c.Scale = prev.Scale
	case "density":
		c.Density = prev.Density
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := core.Rules()[c.Rule]; !ok {
		errs = append(errs, fmt.Errorf("%w %q", core.ErrUnknownRule, c.Rule))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", c.Steps))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := cache.New(cache.Mode(c.Cache), c.CacheSize); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(devices, c.Device) {
		errs = append(errs, fmt.Errorf("invalid device %q: must be one of %v", c.Device, devices))
	}
	if _, err := core.ParseBorder(c.Border); err != nil {
		errs = append(errs, err)
	}
	if c.Density < 0 || c.Density > 1 {
		errs = append(errs, fmt.Errorf("density must be within [0,1], got %v", c.Density))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Params = cloneParams(c.Params)
	return &cp
}

func cloneParams(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
