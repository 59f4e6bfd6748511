// Package control manages the busy state of trigger controls.
package control

import (
	"sync"

	"CovidDash/internal/domain"
	"CovidDash/internal/ports"
)

// Stats counts guard activity for one control.
type Stats struct {
	Acquired int
	Released int
}

// Guard pairs acquire/release of a control's busy state. It keeps no
// ownership count: overlapping invocations share the control and whichever
// releases last leaves it idle, even if another invocation is still running.
type Guard struct {
	mu       sync.Mutex
	controls ports.Controls
	stats    map[domain.ControlID]*Stats
}

// NewGuard wraps the page controls.
func NewGuard(controls ports.Controls) *Guard {
	return &Guard{
		controls: controls,
		stats:    map[domain.ControlID]*Stats{},
	}
}

// Acquire marks id busy and returns its release. Release is safe to call
// more than once; only the first call has an effect, so callers simply
// defer it.
func (g *Guard) Acquire(id domain.ControlID) (release func()) {
	g.set(id, true)

	var once sync.Once
	return func() {
		once.Do(func() { g.set(id, false) })
	}
}

// Stats returns the counters of id.
func (g *Guard) Stats(id domain.ControlID) Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.stats[id]; ok {
		return *s
	}
	return Stats{}
}

func (g *Guard) set(id domain.ControlID, busy bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.stats[id]
	if !ok {
		s = &Stats{}
		g.stats[id] = s
	}
	if busy {
		s.Acquired++
	} else {
		s.Released++
	}
	if g.controls != nil {
		g.controls.SetBusy(id, busy)
	}
}
