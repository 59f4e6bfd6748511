package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"CovidDash/internal/action"
	"CovidDash/internal/domain"
)

// RunEDA runs the exploratory analysis for the EDA region (or the default
// region), embeds its charts and enables the derived open/download links.
func (d *Dashboard) RunEDA(ctx context.Context) error {
	act := trigger{name: action.RunEDA, control: domain.ControlRunEDA, failure: "EDA failed"}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		state := d.regionOrDefault(domain.FieldEDARegion)
		inv.announce("Running EDA… first run may take longer.")

		inv.enter(PhaseRequesting)
		res := d.api.RunEDA(ctx, state)

		inv.enter(PhaseReconciling)
		job, err := res.Unwrap()
		if err != nil {
			return err
		}
		if !job.OK {
			return errors.New(job.FailureReason("EDA failed"))
		}

		casesURL := job.Output(domain.OutputDailyCasesHTML)
		deathsURL := job.Output(domain.OutputDailyDeathsHTML)
		csvURL := job.Output(domain.OutputCSV)

		now := d.clock.Now()
		if casesURL != "" {
			d.documents.EmbedDocument(domain.ContainerEDACases, cacheBusted(casesURL, now))
		}
		if deathsURL != "" {
			d.documents.EmbedDocument(domain.ContainerEDADeaths, cacheBusted(deathsURL, now))
		}
		d.links.BindLink(domain.LinkOpenCases, casesURL)
		d.links.BindLink(domain.LinkOpenDeaths, deathsURL)
		d.links.BindLink(domain.LinkDownloadCSV, csvURL)

		inv.succeed("EDA ready.")
		return nil
	})
}

// RunForecast builds a forecast for the forecast region and day count,
// falling back to the defaults when they are blank or unparsable.
func (d *Dashboard) RunForecast(ctx context.Context) error {
	act := trigger{name: action.RunForecast, control: domain.ControlRunForecast, failure: "Forecast failed"}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		state := d.regionOrDefault(domain.FieldForecastState)
		days := parseDays(d.inputs.Value(domain.FieldForecastDays), d.settings.ForecastDays)
		inv.announce("Building forecast…")

		inv.enter(PhaseRequesting)
		res := d.api.RunForecast(ctx, state, days)

		inv.enter(PhaseReconciling)
		job, err := res.Unwrap()
		if err != nil {
			return err
		}
		if !job.OK {
			return errors.New(job.FailureReason("Forecast failed"))
		}

		if job.URL != "" {
			d.documents.EmbedDocument(domain.ContainerForecastView, cacheBusted(job.URL, d.clock.Now()))
		}
		d.links.BindLink(domain.LinkOpenForecast, job.URL)

		inv.succeed("Forecast ready.")
		return nil
	})
}

func (d *Dashboard) regionOrDefault(field domain.FieldID) string {
	if state := strings.TrimSpace(d.inputs.Value(field)); state != "" {
		return state
	}
	return d.settings.DefaultRegion
}

func parseDays(text string, def int) int {
	days, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || days <= 0 {
		return def
	}
	return days
}
