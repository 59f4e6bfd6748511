// Package page is the in-memory dashboard page: the controls, fields,
// render containers and status slot that the orchestrators drive. It is
// safe for concurrent use; hosts render it from snapshots.
package page

import (
	"sort"
	"sync"

	"CovidDash/internal/domain"
	"CovidDash/internal/ports"
)

// ControlState is the visible state of a control or derived link.
type ControlState struct {
	Disabled bool
	Busy     bool
	Target   string
}

// Snapshot is a consistent copy of the page.
type Snapshot struct {
	Status    domain.StatusMessage
	Controls  map[domain.ControlID]ControlState
	Fields    map[domain.FieldID]string
	Charts    map[domain.ContainerID]domain.Chart
	Comments  map[domain.ContainerID][]domain.Comment
	Documents map[domain.ContainerID]string
}

// Page stores the dashboard state.
type Page struct {
	mu        sync.RWMutex
	status    domain.StatusMessage
	controls  map[domain.ControlID]ControlState
	fields    map[domain.FieldID]string
	charts    map[domain.ContainerID]domain.Chart
	comments  map[domain.ContainerID][]domain.Comment
	documents map[domain.ContainerID]string
	onChange  func()
}

var (
	_ ports.StatusSurface    = (*Page)(nil)
	_ ports.Controls         = (*Page)(nil)
	_ ports.Inputs           = (*Page)(nil)
	_ ports.ChartRenderer    = (*Page)(nil)
	_ ports.CommentRenderer  = (*Page)(nil)
	_ ports.DocumentEmbedder = (*Page)(nil)
	_ ports.Links            = (*Page)(nil)
)

// derivedLinks start disabled until a job binds them.
var derivedLinks = []domain.ControlID{
	domain.LinkOpenCases,
	domain.LinkOpenDeaths,
	domain.LinkDownloadCSV,
	domain.LinkOpenForecast,
}

// New creates an empty page with every derived link disabled.
func New() *Page {
	p := &Page{
		status:    domain.StatusMessage{Severity: domain.SeverityInfo},
		controls:  map[domain.ControlID]ControlState{},
		fields:    map[domain.FieldID]string{},
		charts:    map[domain.ContainerID]domain.Chart{},
		comments:  map[domain.ContainerID][]domain.Comment{},
		documents: map[domain.ContainerID]string{},
	}
	for _, id := range derivedLinks {
		p.controls[id] = ControlState{Disabled: true}
	}
	return p
}

// OnChange registers fn to be called after every mutation. fn runs outside
// the page lock and may call Snapshot.
func (p *Page) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// ShowStatus replaces the status slot.
func (p *Page) ShowStatus(msg domain.StatusMessage) {
	p.mutate(func() { p.status = msg })
}

// SetBusy disables a control and shows its busy indicator, or the inverse.
func (p *Page) SetBusy(id domain.ControlID, busy bool) {
	p.mutate(func() {
		state := p.controls[id]
		state.Disabled = busy
		state.Busy = busy
		p.controls[id] = state
	})
}

// Value returns the content of a field.
func (p *Page) Value(id domain.FieldID) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fields[id]
}

// SetValue types text into a field.
func (p *Page) SetValue(id domain.FieldID, text string) {
	p.mutate(func() { p.fields[id] = text })
}

// Reset empties fields.
func (p *Page) Reset(ids ...domain.FieldID) {
	p.mutate(func() {
		for _, id := range ids {
			delete(p.fields, id)
		}
	})
}

// RenderTimeSeries stores the chart built from rows in container.
func (p *Page) RenderTimeSeries(container domain.ContainerID, rows []domain.SeriesRow, value, average domain.SeriesField, title string) {
	chart := domain.NewChart(rows, value, average, title)
	p.mutate(func() { p.charts[container] = chart })
}

// RenderCommentList replaces the comments of container.
func (p *Page) RenderCommentList(container domain.ContainerID, items []domain.Comment) {
	list := append([]domain.Comment(nil), items...)
	p.mutate(func() { p.comments[container] = list })
}

// EmbedDocument points container at url.
func (p *Page) EmbedDocument(container domain.ContainerID, url string) {
	p.mutate(func() { p.documents[container] = url })
}

// BindLink enables a derived link for url, or disables it when url is "".
func (p *Page) BindLink(id domain.ControlID, url string) {
	p.mutate(func() {
		p.controls[id] = ControlState{Disabled: url == "", Target: url}
	})
}

// LinkTarget returns the URL of an enabled link.
func (p *Page) LinkTarget(id domain.ControlID) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	state, ok := p.controls[id]
	if !ok || state.Disabled || state.Target == "" {
		return "", false
	}
	return state.Target, true
}

// Control returns the state of a control.
func (p *Page) Control(id domain.ControlID) ControlState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.controls[id]
}

// Snapshot copies the page.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		Status:    p.status,
		Controls:  make(map[domain.ControlID]ControlState, len(p.controls)),
		Fields:    make(map[domain.FieldID]string, len(p.fields)),
		Charts:    make(map[domain.ContainerID]domain.Chart, len(p.charts)),
		Comments:  make(map[domain.ContainerID][]domain.Comment, len(p.comments)),
		Documents: make(map[domain.ContainerID]string, len(p.documents)),
	}
	for k, v := range p.controls {
		snap.Controls[k] = v
	}
	for k, v := range p.fields {
		snap.Fields[k] = v
	}
	for k, v := range p.charts {
		snap.Charts[k] = v
	}
	for k, v := range p.comments {
		snap.Comments[k] = v
	}
	for k, v := range p.documents {
		snap.Documents[k] = v
	}
	return snap
}

// EnabledLinks lists derived links that currently have a target.
func (s Snapshot) EnabledLinks() []domain.ControlID {
	var ids []domain.ControlID
	for _, id := range derivedLinks {
		if state := s.Controls[id]; !state.Disabled && state.Target != "" {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *Page) mutate(fn func()) {
	p.mu.Lock()
	fn()
	notify := p.onChange
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}
