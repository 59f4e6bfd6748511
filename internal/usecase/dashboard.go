package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"

	"CovidDash/internal/control"
	"CovidDash/internal/domain"
	"CovidDash/internal/ports"
	"CovidDash/internal/status"
)

// Settings carries the defaults the orchestrators fall back to.
type Settings struct {
	AutoClear     time.Duration
	DefaultRegion string
	ForecastDays  int
	DownloadDir   string
}

// DashboardDeps wires all driven adapters into the orchestrators. Only API
// is required; missing sinks are replaced by no-ops.
type DashboardDeps struct {
	API        ports.DashboardAPI
	Downloader ports.Downloader
	Resolver   ports.Resolver
	Opener     ports.Opener
	Announcer  *status.Announcer
	Guard      *control.Guard
	Inputs     ports.Inputs
	Charts     ports.ChartRenderer
	Comments   ports.CommentRenderer
	Documents  ports.DocumentEmbedder
	Links      ports.Links
	Clock      clock.Clock
	Logger     *slog.Logger
	Settings   Settings
}

// Dashboard implements the user-triggerable actions of the page. Every
// action is independent: it owns its control, never waits for another
// action and may overlap with other invocations, including of itself.
type Dashboard struct {
	api        ports.DashboardAPI
	downloader ports.Downloader
	resolver   ports.Resolver
	opener     ports.Opener
	announcer  *status.Announcer
	guard      *control.Guard
	inputs     ports.Inputs
	charts     ports.ChartRenderer
	comments   ports.CommentRenderer
	documents  ports.DocumentEmbedder
	links      ports.Links
	clock      clock.Clock
	logger     *slog.Logger
	settings   Settings
}

// NewDashboard constructs the orchestration component.
func NewDashboard(deps DashboardDeps) *Dashboard {
	d := &Dashboard{
		api:        deps.API,
		downloader: deps.Downloader,
		resolver:   deps.Resolver,
		opener:     deps.Opener,
		announcer:  deps.Announcer,
		guard:      deps.Guard,
		inputs:     deps.Inputs,
		charts:     deps.Charts,
		comments:   deps.Comments,
		documents:  deps.Documents,
		links:      deps.Links,
		clock:      deps.Clock,
		logger:     deps.Logger,
		settings:   deps.Settings,
	}

	if d.clock == nil {
		d.clock = clock.WallClock
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.announcer == nil {
		d.announcer = status.NewAnnouncer(nil, d.clock)
	}
	if d.guard == nil {
		d.guard = control.NewGuard(nil)
	}
	if d.inputs == nil {
		d.inputs = blankInputs{}
	}
	if d.charts == nil {
		d.charts = discard{}
	}
	if d.comments == nil {
		d.comments = discard{}
	}
	if d.documents == nil {
		d.documents = discard{}
	}
	if d.links == nil {
		d.links = &memoryLinks{}
	}
	if d.settings.AutoClear <= 0 {
		d.settings.AutoClear = 1200 * time.Millisecond
	}
	if d.settings.DefaultRegion == "" {
		d.settings.DefaultRegion = "California"
	}
	if d.settings.ForecastDays <= 0 {
		d.settings.ForecastDays = 30
	}
	return d
}

// Phase is a step of one action invocation.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseGuarded     Phase = "guarded"
	PhaseRequesting  Phase = "requesting"
	PhaseReconciling Phase = "reconciling"
)

type trigger struct {
	name    string
	control domain.ControlID
	// failure prefixes error announcements until the invocation knows better.
	failure string
}

// invocation is the state of one running action.
type invocation struct {
	d         *Dashboard
	logger    *slog.Logger
	phase     Phase
	failure   string
	token     status.Token
	succeeded bool
	started   time.Time
}

func (inv *invocation) enter(p Phase) {
	inv.phase = p
	inv.logger.Debug("phase", "phase", p)
}

func (inv *invocation) announce(text string) {
	inv.d.announcer.Announce(text, domain.SeverityInfo)
}

// succeed shows a success message; the slot auto-clears once the
// invocation has released its control.
func (inv *invocation) succeed(text string) {
	inv.token = inv.d.announcer.Announce(text, domain.SeveritySuccess)
	inv.succeeded = true
}

// fail announces err and returns the error handed back to the caller.
// Validation errors become warnings shown verbatim; everything else is an
// error prefixed with the action context.
func (inv *invocation) fail(err error) error {
	inv.succeeded = false
	if errors.Is(err, errors.NotValid) {
		inv.d.announcer.Announce(err.Error(), domain.SeverityWarn)
		inv.logger.Info("action rejected input", "reason", err.Error())
		return err
	}
	msg := inv.failure + ": " + err.Error()
	inv.d.announcer.Announce(msg, domain.SeverityError)
	inv.logger.Warn("action failed", "phase", inv.phase, "error", err.Error())
	return errors.New(msg)
}

// run sequences guard, body and release for one invocation. The control is
// released on every exit path, including a panic inside body, and the
// status auto-clear is scheduled only after a successful body.
func (d *Dashboard) run(ctx context.Context, act trigger, body func(ctx context.Context, inv *invocation) error) (err error) {
	inv := &invocation{
		d:       d,
		logger:  d.logger.With("action", act.name, "invocation", uuid.NewString()),
		phase:   PhaseIdle,
		failure: act.failure,
		started: d.clock.Now(),
	}

	release := d.guard.Acquire(act.control)
	inv.enter(PhaseGuarded)

	defer func() {
		if r := recover(); r != nil {
			err = inv.fail(errors.Errorf("unexpected failure: %v", r))
		}
		release()
		inv.enter(PhaseIdle)
		if err == nil && inv.succeeded {
			d.announcer.ClearAfter(inv.token, d.settings.AutoClear)
		}
		inv.logger.Info("action finished",
			"ok", err == nil,
			"elapsed", d.clock.Now().Sub(inv.started).String())
	}()

	if bodyErr := body(ctx, inv); bodyErr != nil {
		return inv.fail(bodyErr)
	}
	return nil
}

// cacheBusted appends t=<unix millis> so that a re-run with an unchanged
// document name still reloads the embedded view.
func cacheBusted(ref string, now time.Time) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	query := u.Query()
	query.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = query.Encode()
	return u.String()
}
