package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpca/internal/core"
)

func TestFixedStepUnpaced(t *testing.T) {
	fs := core.NewFixedStep(0)
	assert.Zero(t, fs.Step())
	require.NoError(t, fs.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, fs.Wait(ctx), context.Canceled)
}

func TestFixedStepPaces(t *testing.T) {
	fs := core.NewFixedStep(50)
	assert.Equal(t, 20*time.Millisecond, fs.Step())

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, fs.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond, "first tick is immediate, the next two wait")
}

func TestFixedStepCancelledWhileWaiting(t *testing.T) {
	fs := core.NewFixedStep(1)
	require.NoError(t, fs.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, fs.Wait(ctx), context.DeadlineExceeded)
}
