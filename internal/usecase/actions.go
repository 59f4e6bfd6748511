package usecase

import (
	"CovidDash/internal/action"
	"CovidDash/internal/status"
)

// Register adds every orchestrator of d to reg.
func (d *Dashboard) Register(reg *action.Registry) {
	reg.Register(action.LoadRegion, d.LoadRegion)
	reg.Register(action.LoadNational, d.LoadNational)
	reg.Register(action.PostComment, d.PostComment)
	reg.Register(action.RefreshComments, d.RefreshComments)
	reg.Register(action.RunEDA, d.RunEDA)
	reg.Register(action.RunForecast, d.RunForecast)
}

// Announcer exposes the status slot so hosts can report their own events
// (for example a failed derived action) through the same surface.
func (d *Dashboard) Announcer() *status.Announcer {
	return d.announcer
}
