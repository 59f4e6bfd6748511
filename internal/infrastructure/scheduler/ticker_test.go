package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTickerRunsJob(t *testing.T) {
	t.Parallel()

	clk := testclock.NewClock(time.Now())
	ticker := NewTicker(time.Minute, clk)

	var runs atomic.Int32
	ctx := context.Background()
	require.NoError(t, ticker.Start(ctx, func(time.Time) { runs.Add(1) }))
	// A second Start while running is ignored.
	require.NoError(t, ticker.Start(ctx, func(time.Time) { runs.Add(100) }))

	require.NoError(t, clk.WaitAdvance(time.Minute, time.Second, 1))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, clk.WaitAdvance(time.Minute, time.Second, 1))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, time.Millisecond)

	require.NoError(t, ticker.Stop(ctx))
	require.NoError(t, ticker.Stop(ctx))
}

func TestTickerDisabled(t *testing.T) {
	t.Parallel()

	ticker := NewTicker(0, nil)
	require.NoError(t, ticker.Start(context.Background(), func(time.Time) {}))
	assert.NoError(t, ticker.Stop(context.Background()))
}

func TestTickerStopsWithContext(t *testing.T) {
	t.Parallel()

	ticker := NewTicker(time.Hour, testclock.NewClock(time.Now()))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, ticker.Start(ctx, func(time.Time) {}))

	cancel()
	require.NoError(t, ticker.Stop(context.Background()))
}
