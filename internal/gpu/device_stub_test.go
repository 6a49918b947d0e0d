//go:build !ebiten

package gpu

import (
	"errors"
	"testing"

	"gpca/internal/core"
)

func TestNewDeviceUnavailable(t *testing.T) {
	d, err := NewDevice()
	if !errors.Is(err, core.ErrDeviceUnavailable) {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", err)
	}
	if d != nil {
		t.Fatal("stub must not return a device")
	}
}
