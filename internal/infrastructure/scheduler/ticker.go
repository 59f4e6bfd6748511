package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"

	"CovidDash/internal/ports"
)

// Ticker runs a job every interval until stopped. A non-positive interval
// disables it: Start becomes a no-op.
type Ticker struct {
	interval time.Duration
	clock    clock.Clock

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*Ticker)(nil)

// NewTicker builds a ticker; a nil clock means the wall clock.
func NewTicker(interval time.Duration, clk clock.Clock) *Ticker {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Ticker{interval: interval, clock: clk}
}

// Start begins ticking. The first run happens one interval after Start.
func (t *Ticker) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil || t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop, t.done = stop, done

	go func() {
		defer close(done)
		for {
			select {
			case now := <-t.clock.After(t.interval):
				job(now)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine and waits for a running job to finish.
func (t *Ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
