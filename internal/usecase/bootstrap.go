package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"CovidDash/internal/domain"
)

// Bootstrap performs the page-load actions: the series of the pre-filled
// region (or the national series when none is set) and the comment list,
// concurrently. It waits for both and returns the first failure, which has
// already been announced.
func (d *Dashboard) Bootstrap(ctx context.Context) error {
	// A plain Group: one action failing must not cancel the other.
	var g errgroup.Group

	g.Go(func() error {
		if strings.TrimSpace(d.inputs.Value(domain.FieldRegion)) != "" {
			return d.LoadRegion(ctx)
		}
		return d.LoadNational(ctx)
	})
	g.Go(func() error {
		return d.RefreshComments(ctx)
	})

	return g.Wait()
}
