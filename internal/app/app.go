//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gpca/internal/render"
	"gpca/internal/ui"
)

const hudWidth = 220

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	logger  *slog.Logger

	states   uint32
	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided session.
func New(s *Session, logger *slog.Logger) *Game {
	size := s.Size()
	states := s.Rule().States()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Game{
		session: s,
		painter: render.NewGridPainter(size.W, size.H, render.Palette(int(states))),
		hud:     ui.NewHUD(s, hudWidth),
		logger:  logger,
		states:  states,
		scale:   s.Config().Scale,
		seed:    s.Config().Seed,
	}
}

// Reset reinitializes the lattice with the provided seed.
func (g *Game) Reset(seed int64) error {
	g.seed = seed
	g.tickOnce = false
	return g.session.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	g.session.activateDevice()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		if g.session.ToggleDevice() {
			g.logger.Info("compute path", "path", g.session.Path())
		}
	}

	size := g.session.Size()
	g.hud.Update(size.W * g.scale)

	if !g.paused || g.tickOnce {
		g.tickOnce = false
		return g.session.Step()
	}
	return nil
}

// Draw renders the current lattice state.
func (g *Game) Draw(screen *ebiten.Image) {
	if n := g.session.Rule().States(); n != g.states {
		g.states = n
		g.painter.SetPalette(render.Palette(int(n)))
	}
	g.painter.Blit(screen, g.session.Frame(), g.scale)
	g.hud.Draw(screen, g.session.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
