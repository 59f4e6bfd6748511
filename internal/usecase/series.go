package usecase

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"CovidDash/internal/action"
	"CovidDash/internal/domain"
	"CovidDash/internal/result"
)

const nationalLabel = "USA"

// LoadRegion charts the series of the state typed in the region field.
func (d *Dashboard) LoadRegion(ctx context.Context) error {
	act := trigger{name: action.LoadRegion, control: domain.ControlLoadRegion, failure: "Failed to load state"}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		state := strings.TrimSpace(d.inputs.Value(domain.FieldRegion))
		if state == "" {
			return errors.NewNotValid(nil, "Please enter a state (e.g., New York).")
		}
		inv.failure = "Failed to load " + state
		inv.announce("Loading " + state + "…")

		inv.enter(PhaseRequesting)
		rows := d.api.StateSeries(ctx, state)
		return d.showSeries(inv, rows, state)
	})
}

// LoadNational charts the US aggregate series.
func (d *Dashboard) LoadNational(ctx context.Context) error {
	act := trigger{name: action.LoadNational, control: domain.ControlLoadNational, failure: "Failed to load " + nationalLabel}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		inv.announce("Loading " + nationalLabel + "…")

		inv.enter(PhaseRequesting)
		rows := d.api.NationalSeries(ctx)
		return d.showSeries(inv, rows, nationalLabel)
	})
}

func (d *Dashboard) showSeries(inv *invocation, res result.Result[[]domain.SeriesRow], label string) error {
	inv.enter(PhaseReconciling)
	rows, err := res.Unwrap()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrEmptyResult
	}

	d.charts.RenderTimeSeries(domain.ContainerCasesChart, rows, domain.FieldNewCases, domain.FieldMA7NewCases, "New Cases — "+label)
	d.charts.RenderTimeSeries(domain.ContainerDeathsChart, rows, domain.FieldNewDeaths, domain.FieldMA7NewDeaths, "New Deaths — "+label)
	inv.logger.Debug("series rendered", "rows", len(rows))
	inv.succeed("Loaded: " + label)
	return nil
}
