package app

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"CovidDash/internal/action"
	"CovidDash/internal/config"
	"CovidDash/internal/control"
	"CovidDash/internal/domain"
	"CovidDash/internal/infrastructure/api"
	"CovidDash/internal/infrastructure/browser"
	"CovidDash/internal/infrastructure/console"
	"CovidDash/internal/infrastructure/page"
	"CovidDash/internal/infrastructure/preview"
	"CovidDash/internal/infrastructure/scheduler"
	"CovidDash/internal/infrastructure/tui"
	"CovidDash/internal/logging"
	"CovidDash/internal/status"
	"CovidDash/internal/usecase"
)

// Application wires configs to the dashboard and its hosts.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	client    *api.Client
	page      *page.Page
	announcer *status.Announcer
	dashboard *usecase.Dashboard
	registry  *action.Registry
	previewer *preview.Fetcher
	refresher *usecase.Scheduler
}

// New builds the application. The region field starts with the configured
// initial region, if any.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, nil)
	}

	client, err := api.NewClient(cfg.API, nil, baseLogger.With("component", "api"))
	if err != nil {
		return nil, errors.Annotate(err, "create api client")
	}

	pg := page.New()
	if region := strings.TrimSpace(cfg.Dashboard.InitialRegion); region != "" {
		pg.SetValue(domain.FieldRegion, region)
	}

	clk := clock.WallClock
	announcer := status.NewAnnouncer(pg, clk)

	dashboard := usecase.NewDashboard(usecase.DashboardDeps{
		API:        client,
		Downloader: client,
		Resolver:   client,
		Opener:     browser.NewOpener(baseLogger.With("component", "browser")),
		Announcer:  announcer,
		Guard:      control.NewGuard(pg),
		Inputs:     pg,
		Charts:     pg,
		Comments:   pg,
		Documents:  pg,
		Links:      pg,
		Clock:      clk,
		Logger:     baseLogger.With("component", "dashboard"),
		Settings: usecase.Settings{
			AutoClear:     cfg.Status.AutoClear,
			DefaultRegion: cfg.Defaults.Region,
			ForecastDays:  cfg.Defaults.ForecastDays,
			DownloadDir:   cfg.Dashboard.DownloadDir,
		},
	})

	registry := action.NewRegistry()
	dashboard.Register(registry)

	var refresher *usecase.Scheduler
	if cfg.Dashboard.CommentsRefresh > 0 {
		refresher = usecase.NewScheduler(scheduler.NewTicker(cfg.Dashboard.CommentsRefresh, clk), dashboard)
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		client:    client,
		page:      pg,
		announcer: announcer,
		dashboard: dashboard,
		registry:  registry,
		previewer: preview.NewFetcher(nil, client, cfg.API.UserAgent),
		refresher: refresher,
	}, nil
}

// Page exposes the page so callers can fill fields before running actions.
func (a *Application) Page() *page.Page {
	return a.page
}

// Dashboard exposes the orchestrators, e.g. for derived actions.
func (a *Application) Dashboard() *usecase.Dashboard {
	return a.dashboard
}

// Interactive runs the terminal dashboard until the user quits.
func (a *Application) Interactive(ctx context.Context) error {
	defer a.announcer.Close()

	if a.refresher != nil {
		if err := a.refresher.Start(ctx); err != nil {
			return errors.Annotate(err, "start comments refresh")
		}
		defer func() {
			if err := a.refresher.Stop(context.Background()); err != nil {
				a.logger.Warn("stop comments refresh", "error", err)
			}
		}()
	}

	a.logger.Info("dashboard started", "api", a.cfg.API.BaseURL)
	return tui.Run(ctx, tui.Deps{
		Page:      a.page,
		Actions:   a.registry,
		Derived:   a.dashboard,
		Previewer: a.previewer,
		Announcer: a.announcer,
		Bootstrap: a.dashboard.Bootstrap,
		AutoClear: a.cfg.Status.AutoClear,
		Logger:    a.logger.With("component", "tui"),
	})
}

// Run executes one named action headlessly, streaming status changes to
// out and printing the page afterwards. The action error is returned after
// the page has been printed.
func (a *Application) Run(ctx context.Context, name string, out io.Writer) error {
	fn, err := a.registry.Resolve(name)
	if err != nil {
		return err
	}

	printer := console.NewPrinter(out, 60)
	printer.Follow(a.page)

	runErr := fn(ctx)
	a.announcer.Close()
	printer.Print(a.page.Snapshot())
	return runErr
}

// Health asks the backend whether it is up.
func (a *Application) Health(ctx context.Context) (string, error) {
	return a.client.Health(ctx).Unwrap()
}
