//go:build !ebiten

package gpu

import (
	"fmt"

	"gpca/internal/core"
)

// Device is unavailable in builds without the ebiten tag.
type Device struct{}

// NewDevice reports that this build has no GPU backend.
func NewDevice() (*Device, error) {
	return nil, fmt.Errorf("%w: built without the ebiten tag", core.ErrDeviceUnavailable)
}

// Dispatch implements core.Device.
func (*Device) Dispatch(*core.Pipeline) (core.Image, error) {
	return core.Image{}, core.ErrDeviceUnavailable
}

// Activate is a no-op.
func (*Device) Activate() {}

// Close is a no-op.
func (*Device) Close() {}
