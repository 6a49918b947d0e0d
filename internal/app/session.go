package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gpca/internal/cache"
	"gpca/internal/core"
	"gpca/internal/gpu"
	"gpca/internal/render"
	"gpca/internal/rules/elementary"
	"gpca/pkg/random"
)

// oneDimensional is implemented by rules that run on a ring.
type oneDimensional interface {
	OneDimensional() bool
}

// activator is implemented by devices that only work inside the window loop.
type activator interface {
	Activate()
}

type closer interface {
	Close()
}

func isRing(r core.Rule) bool {
	od, ok := r.(oneDimensional)
	return ok && od.OneDimensional()
}

// Session owns one configured system and advances it on the CPU path or on
// a device. Rules that run on rings keep a scrolling spacetime history of
// Height rows.
type Session struct {
	cfg    *Config
	logger *slog.Logger

	rule core.Rule
	memo cache.Resettable

	grid *core.System[core.Size]
	ring *core.System[core.Ring]

	device     core.Device
	deviceName string
	useDevice  bool
	history    [][]core.State
}

// NewSession builds the rule, memo, topology and device described by cfg.
func NewSession(cfg *Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{cfg: cfg.Clone(), logger: logger}
	if err := s.build(); err != nil {
		return nil, err
	}

	switch cfg.Device {
	case DeviceSoftware:
		s.device = gpu.NewSoftware()
		s.useDevice = true
	case DeviceGPU:
		dev, err := gpu.NewDevice()
		if err != nil {
			return nil, err
		}
		s.device = dev
		s.useDevice = true
	}
	s.deviceName = cfg.Device
	if s.useDevice {
		if _, ok := s.rule.(core.LatticeRule); !ok || s.grid == nil {
			return nil, fmt.Errorf("device %s: %w: %s", cfg.Device, core.ErrNoLatticeRule, cfg.Rule)
		}
	}
	return s, nil
}

func (s *Session) build() error {
	rule, err := core.Lookup(s.cfg.Rule, s.cfg.Params)
	if err != nil {
		return err
	}
	memo, err := cache.New(cache.Mode(s.cfg.Cache), s.cfg.CacheSize)
	if err != nil {
		return err
	}
	s.rule, s.memo = rule, memo
	return s.populate()
}

// populate seeds a fresh topology for the current rule.
func (s *Session) populate() error {
	opts := s.options()
	s.grid, s.ring, s.history = nil, nil, nil
	if isRing(s.rule) {
		g, err := core.NewRing(s.seed(s.cfg.Width), nil)
		if err != nil {
			return err
		}
		s.ring = core.New(g, s.rule, opts...)
		s.record()
		return nil
	}
	g, err := core.NewGrid(s.seed(s.cfg.Width*s.cfg.Height), s.cfg.Width, s.cfg.Height, nil)
	if err != nil {
		return err
	}
	s.grid = core.New(g, s.rule, opts...)
	return nil
}

func (s *Session) options() []core.Option {
	border, _ := core.ParseBorder(s.cfg.Border)
	opts := []core.Option{core.WithBorder(border), core.WithLogger(s.logger)}
	if s.cfg.Workers > 0 {
		opts = append(opts, core.WithWorkers(s.cfg.Workers))
	}
	if s.memo != nil {
		opts = append(opts, core.WithMemo(s.memo))
	}
	return opts
}

func (s *Session) seed(n int) []core.State {
	nodes := make([]core.State, n)
	if isRing(s.rule) && s.cfg.Density == 0 {
		elementary.Seed(nodes)
		return nodes
	}
	random.FillStates(random.New(s.cfg.Seed).Source(), nodes, s.rule.States(), s.cfg.Density)
	return nodes
}

func (s *Session) record() {
	s.history = append(s.history, s.ring.SpaceState())
	if over := len(s.history) - s.cfg.Height; over > 0 {
		s.history = s.history[over:]
	}
}

// Step advances one generation.
func (s *Session) Step() error {
	if s.ring != nil {
		if err := s.ring.ComputeSync(); err != nil {
			return err
		}
		s.record()
		return nil
	}
	if s.useDevice {
		return s.grid.ComputeSyncGPU(s.device)
	}
	return s.grid.ComputeSync()
}

// Reset reseeds the topology. The memo survives because the rule is
// unchanged.
func (s *Session) Reset(seed int64) error {
	s.cfg.Seed = seed
	return s.populate()
}

// SetIntParameter rebuilds the rule with key=value, keeping the current
// states. The memo is cleared since cached outputs belong to the old rule.
func (s *Session) SetIntParameter(key string, value int) bool {
	params := cloneParams(s.cfg.Params)
	params[key] = strconv.Itoa(value)
	rule, err := core.Lookup(s.cfg.Rule, params)
	if err != nil {
		s.logger.Warn("parameter rejected", "key", key, "value", value, "error", err)
		return false
	}
	s.cfg.Params = params
	s.rule = rule
	if s.memo != nil {
		s.memo.Reset()
	}
	if s.ring != nil {
		s.ring = core.New(s.ring.Space(), rule, s.options()...)
	} else {
		s.grid = core.New(s.grid.Space(), rule, s.options()...)
	}
	s.logger.Info("parameter changed", "key", key, "value", value)
	return true
}

// ToggleDevice switches between the CPU path and the configured device. It
// reports false when no device is available.
func (s *Session) ToggleDevice() bool {
	if s.device == nil || s.grid == nil {
		return false
	}
	if _, ok := s.rule.(core.LatticeRule); !ok {
		return false
	}
	s.useDevice = !s.useDevice
	return true
}

// SetDevice installs a named device for lattice steps, enabling it when use
// is set.
func (s *Session) SetDevice(name string, dev core.Device, use bool) error {
	if use {
		if _, ok := s.rule.(core.LatticeRule); !ok || s.grid == nil {
			return fmt.Errorf("%w: %s", core.ErrNoLatticeRule, s.cfg.Rule)
		}
	}
	s.device, s.deviceName = dev, name
	s.useDevice = use && dev != nil
	return nil
}

// activateDevice tells a loop-bound device that the window loop is running.
func (s *Session) activateDevice() {
	if a, ok := s.device.(activator); ok {
		a.Activate()
	}
}

// Close releases the device's resources, if it holds any.
func (s *Session) Close() {
	if c, ok := s.device.(closer); ok {
		c.Close()
	}
}

// Path names the compute path used by Step.
func (s *Session) Path() string {
	if s.useDevice && s.grid != nil {
		return s.deviceName
	}
	return DeviceCPU
}

// Rule returns the active rule.
func (s *Session) Rule() core.Rule { return s.rule }

// RuleName is the registry name of the active rule.
func (s *Session) RuleName() string { return s.cfg.Rule }

// Config returns the session's own copy of the configuration.
func (s *Session) Config() *Config { return s.cfg }

// Generation reports the completed generations.
func (s *Session) Generation() uint64 {
	if s.ring != nil {
		return s.ring.Generation()
	}
	return s.grid.Generation()
}

// Stats returns memo statistics, zero without a memo.
func (s *Session) Stats() core.MemoStats {
	if s.memo == nil {
		return core.MemoStats{}
	}
	return s.memo.Stats()
}

// Size is the frame size: the lattice, or ring length by history rows.
func (s *Session) Size() core.Size {
	return core.Size{W: s.cfg.Width, H: s.cfg.Height}
}

// Frame returns the states to display, row-major over Size. Ring histories
// shorter than Height are padded with zero rows at the bottom.
func (s *Session) Frame() []core.State {
	if s.grid != nil {
		return s.grid.SpaceState()
	}
	out := make([]core.State, 0, s.cfg.Width*s.cfg.Height)
	for _, row := range s.history {
		out = append(out, row...)
	}
	return append(out, make([]core.State, s.cfg.Width*s.cfg.Height-len(out))...)
}

// States returns the current node states.
func (s *Session) States() []core.State {
	if s.ring != nil {
		return s.ring.SpaceState()
	}
	return s.grid.SpaceState()
}

// ASCII renders the current frame, or the recorded spacetime diagram for ring
// rules.
func (s *Session) ASCII() string {
	if s.grid != nil {
		return render.ASCII(s.grid.SpaceState(), s.cfg.Width, s.cfg.Height)
	}
	var b strings.Builder
	for _, row := range s.history {
		render.Spacetime(&b, row)
	}
	return b.String()
}

// Activity is the fraction of non-zero nodes.
func (s *Session) Activity() float64 {
	states := s.States()
	if len(states) == 0 {
		return 0
	}
	live := 0
	for _, v := range states {
		if v != 0 {
			live++
		}
	}
	return float64(live) / float64(len(states))
}
