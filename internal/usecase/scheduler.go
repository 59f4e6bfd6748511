package usecase

import (
	"context"
	"time"

	"CovidDash/internal/ports"
)

// Scheduler wires a recurring driver to the comment-list refresh.
type Scheduler struct {
	driver    ports.Scheduler
	dashboard *Dashboard
}

// NewScheduler returns a helper to start/stop periodic comment refreshes.
func NewScheduler(driver ports.Scheduler, dashboard *Dashboard) *Scheduler {
	return &Scheduler{driver: driver, dashboard: dashboard}
}

// Start registers the refresh with the provided driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.dashboard == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.dashboard.logger.Debug("scheduled comments refresh", "at", trigger.Format(time.RFC3339))
		_ = s.dashboard.RefreshComments(ctx)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
