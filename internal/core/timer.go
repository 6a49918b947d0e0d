package core

import (
	"context"
	"time"
)

// FixedStep paces a driver loop at a steady ticks-per-second rate. A rate of
// zero or less disables pacing.
type FixedStep struct {
	step time.Duration
	next time.Time
	now  func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		f.step = 0
		return
	}
	f.step = time.Second / time.Duration(tps)
}

// Step reports the interval between ticks, zero when unpaced.
func (f *FixedStep) Step() time.Duration { return f.step }

// Wait blocks until the next tick is due or ctx is done. Missed ticks are not
// replayed: a slow tick pushes the schedule back instead of bursting.
func (f *FixedStep) Wait(ctx context.Context) error {
	if f.step <= 0 {
		return ctx.Err()
	}
	now := f.now()
	if f.next.IsZero() || f.next.Before(now) {
		f.next = now
	}
	delay := f.next.Sub(now)
	f.next = f.next.Add(f.step)
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
