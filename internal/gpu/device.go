//go:build ebiten

package gpu

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"gpca/internal/core"
)

// Device runs pipelines as Kage fragment shaders. ebiten only allows pixel
// readback once the game loop is running, so Dispatch fails with
// core.ErrDeviceUnavailable until the loop calls Activate.
type Device struct {
	mu      sync.Mutex
	shaders map[string]*ebiten.Shader
	live    atomic.Bool
}

// NewDevice returns an ebiten-backed device.
func NewDevice() (*Device, error) {
	return &Device{shaders: map[string]*ebiten.Shader{}}, nil
}

// Activate marks the device usable. Call it from the game's Update.
func (d *Device) Activate() { d.live.Store(true) }

func (d *Device) shader(p *core.Pipeline) (*ebiten.Shader, error) {
	if s, ok := d.shaders[p.Label]; ok {
		return s, nil
	}
	s, err := ebiten.NewShader(p.Shader)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %v", core.ErrDeviceUnavailable, p.Label, err)
	}
	d.shaders[p.Label] = s
	return s, nil
}

// Dispatch implements core.Device. The shader is evaluated over the whole
// input lattice and the result cropped to the pipeline's output size on the
// host.
func (d *Device) Dispatch(p *core.Pipeline) (core.Image, error) {
	if !d.live.Load() {
		return core.Image{}, fmt.Errorf("%w: %s dispatched outside the game loop", core.ErrDeviceUnavailable, p.Label)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	sh, err := d.shader(p)
	if err != nil {
		return core.Image{}, err
	}
	uniforms, err := Uniforms(p)
	if err != nil {
		return core.Image{}, err
	}
	pix, err := Pack(p.Input)
	if err != nil {
		return core.Image{}, err
	}

	w, h := p.Input.Width, p.Input.Height
	opts := &ebiten.NewImageOptions{Unmanaged: true}
	src := ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), opts)
	defer src.Dispose()
	dst := ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), opts)
	defer dst.Dispose()

	src.WritePixels(pix)
	op := &ebiten.DrawRectShaderOptions{Uniforms: uniforms, Blend: ebiten.BlendCopy}
	op.Images[0] = src
	dst.DrawRectShader(w, h, sh, op)
	dst.ReadPixels(pix)

	return Crop(Unpack(pix, w, h), p.OutputWidth, p.OutputHeight), nil
}

// Close releases compiled shaders.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, s := range d.shaders {
		s.Dispose()
		delete(d.shaders, k)
	}
}
