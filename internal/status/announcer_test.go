package status

import (
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"CovidDash/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSurface struct {
	mu   sync.Mutex
	seen []domain.StatusMessage
}

func (r *recordingSurface) ShowStatus(msg domain.StatusMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, msg)
}

func (r *recordingSurface) last() domain.StatusMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return domain.StatusMessage{}
	}
	return r.seen[len(r.seen)-1]
}

const autoClear = 1200 * time.Millisecond

func TestAnnounceReplaces(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	a := NewAnnouncer(surface, testclock.NewClock(time.Now()))
	defer a.Close()

	a.Announce("Loading USA…", domain.SeverityInfo)
	a.Announce("Failed to load USA: HTTP 503", domain.SeverityError)

	assert.Equal(t, domain.StatusMessage{Text: "Failed to load USA: HTTP 503", Severity: domain.SeverityError}, a.Current())
	assert.Equal(t, a.Current(), surface.last())

	a.Clear()
	assert.True(t, a.Current().Cleared())
	assert.Equal(t, domain.SeverityInfo, a.Current().Severity)
}

func TestClearAfterClearsSuccess(t *testing.T) {
	t.Parallel()

	clk := testclock.NewClock(time.Now())
	surface := &recordingSurface{}
	a := NewAnnouncer(surface, clk)
	defer a.Close()

	token := a.Announce("Loaded: USA", domain.SeveritySuccess)
	a.ClearAfter(token, autoClear)
	require.Equal(t, 1, a.Pending())

	clk.Advance(autoClear - time.Millisecond)
	assert.Equal(t, "Loaded: USA", a.Current().Text)

	clk.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return a.Current().Cleared() }, time.Second, time.Millisecond)
	assert.True(t, surface.last().Cleared())
	assert.Zero(t, a.Pending())
}

func TestLastWriteWins(t *testing.T) {
	t.Parallel()

	clk := testclock.NewClock(time.Now())
	a := NewAnnouncer(&recordingSurface{}, clk)
	defer a.Close()

	// A succeeds and schedules its clear; B fails before the clear fires.
	tokenA := a.Announce("Loaded: USA", domain.SeveritySuccess)
	a.ClearAfter(tokenA, autoClear)
	a.Announce("Failed to load comments: HTTP 500", domain.SeverityError)

	clk.Advance(2 * autoClear)
	assert.Equal(t, "Failed to load comments: HTTP 500", a.Current().Text)
	assert.Zero(t, a.Pending())

	// B succeeds instead: its own timer clears the slot.
	tokenB := a.Announce("Comment posted.", domain.SeveritySuccess)
	a.ClearAfter(tokenB, autoClear)
	clk.Advance(autoClear)
	require.Eventually(t, func() bool { return a.Current().Cleared() }, time.Second, time.Millisecond)
}

func TestClearAfterStaleTokenIsIgnored(t *testing.T) {
	t.Parallel()

	clk := testclock.NewClock(time.Now())
	a := NewAnnouncer(nil, clk)
	defer a.Close()

	stale := a.Announce("EDA ready.", domain.SeveritySuccess)
	a.Announce("Building forecast…", domain.SeverityInfo)
	a.ClearAfter(stale, autoClear)

	assert.Zero(t, a.Pending())
	clk.Advance(autoClear)
	assert.Equal(t, "Building forecast…", a.Current().Text)
}

func TestCloseStopsTimers(t *testing.T) {
	t.Parallel()

	clk := testclock.NewClock(time.Now())
	a := NewAnnouncer(nil, clk)

	token := a.Announce("Forecast ready.", domain.SeveritySuccess)
	a.ClearAfter(token, autoClear)
	a.Close()

	assert.Zero(t, a.Pending())
	clk.Advance(autoClear)
	assert.Equal(t, "Forecast ready.", a.Current().Text)

	a.ClearAfter(a.Announce("again", domain.SeveritySuccess), autoClear)
	assert.Zero(t, a.Pending())
}

func TestWallClockDefault(t *testing.T) {
	t.Parallel()

	a := NewAnnouncer(nil, nil)
	defer a.Close()

	a.ClearAfter(a.Announce("Loaded: Ohio", domain.SeveritySuccess), 10*time.Millisecond)
	require.Eventually(t, func() bool { return a.Current().Cleared() }, time.Second, 5*time.Millisecond)
}
