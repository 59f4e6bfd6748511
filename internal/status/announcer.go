// Package status owns the single status slot of the dashboard.
package status

import (
	"sync"
	"time"

	"github.com/juju/clock"

	"CovidDash/internal/domain"
	"CovidDash/internal/ports"
)

// Token identifies one announcement. Auto-clears are keyed by it so that a
// timer never wipes a message that replaced the one it was scheduled for.
type Token uint64

// Announcer is a last-write-wins status slot. There is no queue and no
// history: each Announce replaces whatever is visible.
type Announcer struct {
	mu      sync.Mutex
	surface ports.StatusSurface
	clock   clock.Clock
	current domain.StatusMessage
	gen     Token
	timers  map[Token]clock.Timer
	closed  bool
}

// NewAnnouncer binds the slot to a display surface. A nil clock means the
// wall clock.
func NewAnnouncer(surface ports.StatusSurface, clk clock.Clock) *Announcer {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Announcer{
		surface: surface,
		clock:   clk,
		current: domain.StatusMessage{Severity: domain.SeverityInfo},
		timers:  map[Token]clock.Timer{},
	}
}

// Announce replaces the visible status and returns its token.
func (a *Announcer) Announce(text string, severity domain.Severity) Token {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopTimers()
	a.gen++
	a.current = domain.StatusMessage{Text: text, Severity: severity}
	if a.surface != nil {
		a.surface.ShowStatus(a.current)
	}
	return a.gen
}

// Clear empties the slot.
func (a *Announcer) Clear() {
	a.Announce("", domain.SeverityInfo)
}

// ClearAfter empties the slot after delay, but only if the message
// announced under token is still the visible one by then.
func (a *Announcer) ClearAfter(token Token, delay time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || token != a.gen {
		return
	}
	a.timers[token] = a.clock.AfterFunc(delay, func() {
		a.expire(token)
	})
}

// Current returns the visible message.
func (a *Announcer) Current() domain.StatusMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Pending reports how many auto-clears are scheduled.
func (a *Announcer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.timers)
}

// Close stops every pending auto-clear. Announce keeps working afterwards
// but nothing is scheduled any more.
func (a *Announcer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.stopTimers()
}

// stopTimers drops auto-clears of superseded messages. Callers hold mu.
func (a *Announcer) stopTimers() {
	for token, timer := range a.timers {
		timer.Stop()
		delete(a.timers, token)
	}
}

func (a *Announcer) expire(token Token) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.timers, token)
	if a.closed || token != a.gen {
		return
	}
	a.gen++
	a.current = domain.StatusMessage{Severity: domain.SeverityInfo}
	if a.surface != nil {
		a.surface.ShowStatus(a.current)
	}
}
