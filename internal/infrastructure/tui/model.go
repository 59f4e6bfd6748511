// Package tui is the interactive terminal host of the dashboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juju/errors"

	"CovidDash/internal/action"
	"CovidDash/internal/domain"
	"CovidDash/internal/infrastructure/page"
	"CovidDash/internal/infrastructure/preview"
	"CovidDash/internal/infrastructure/render"
	"CovidDash/internal/status"
)

const maxComments = 8

// Derived runs the open/download actions bound to derived links.
type Derived interface {
	Open(id domain.ControlID) error
	Download(ctx context.Context, id domain.ControlID) (string, error)
}

// Previewer fetches a text preview of an embedded document.
type Previewer interface {
	Fetch(ctx context.Context, ref string) (preview.Preview, error)
}

// Deps wires the model to the page and the orchestrators.
type Deps struct {
	Page      *page.Page
	Actions   *action.Registry
	Derived   Derived
	Previewer Previewer
	Announcer *status.Announcer
	Bootstrap action.Func
	AutoClear time.Duration
	Logger    *slog.Logger
}

type (
	pageChangedMsg struct{}
	actionDoneMsg  struct {
		name string
		err  error
	}
	derivedDoneMsg struct {
		text string
		err  error
	}
	previewMsg struct {
		container domain.ContainerID
		preview   preview.Preview
		err       error
	}
)

type field struct {
	id     domain.FieldID
	label  string
	action string
	input  textinput.Model
}

// Model renders the page and dispatches key presses to actions.
type Model struct {
	ctx      context.Context
	deps     Deps
	changes  chan struct{}
	keys     keyMap
	help     help.Model
	styles   styles
	spinner  spinner.Model
	fields   []field
	focus    int
	snap     page.Snapshot
	previews map[domain.ContainerID]preview.Preview
	width    int
}

// New builds the model and subscribes it to page changes. ctx bounds every
// action started from the terminal.
func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Actions == nil {
		deps.Actions = action.NewRegistry()
	}

	m := Model{
		ctx:      ctx,
		deps:     deps,
		changes:  make(chan struct{}, 1),
		keys:     defaultKeys(),
		help:     help.New(),
		styles:   defaultStyles(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		previews: map[domain.ContainerID]preview.Preview{},
		width:    80,
	}

	m.fields = []field{
		newField(domain.FieldRegion, "State", action.LoadRegion, "e.g. New York"),
		newField(domain.FieldCommentName, "Name", action.PostComment, "Anonymous"),
		newField(domain.FieldCommentText, "Comment", action.PostComment, ""),
		newField(domain.FieldCommentState, "Comment state", action.PostComment, "optional"),
		newField(domain.FieldCommentTags, "Tags", action.PostComment, "comma separated"),
		newField(domain.FieldCommentFilter, "Filter comments", action.RefreshComments, "all states"),
		newField(domain.FieldEDARegion, "EDA state", action.RunEDA, "default region"),
		newField(domain.FieldForecastState, "Forecast state", action.RunForecast, "default region"),
		newField(domain.FieldForecastDays, "Forecast days", action.RunForecast, "30"),
	}

	changes := m.changes
	deps.Page.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m.snap = deps.Page.Snapshot()
	for i := range m.fields {
		m.fields[i].input.SetValue(m.snap.Fields[m.fields[i].id])
	}
	m.fields[0].input.Focus()

	return m
}

func newField(id domain.FieldID, label, act, placeholder string) field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Width = 40
	return field{id: id, label: label, action: act, input: in}
}

// Init starts the cursor, the busy spinner, the page subscription and the
// bootstrap actions.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, m.waitForChange()}
	if m.deps.Bootstrap != nil {
		cmds = append(cmds, m.runFunc("bootstrap", m.deps.Bootstrap))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		for i := range m.fields {
			m.fields[i].input.Width = max(10, msg.Width-24)
		}
		return m, nil

	case pageChangedMsg:
		m.snap = m.deps.Page.Snapshot()
		m.syncFields()
		return m, m.waitForChange()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.deps.Logger.Debug("action ended with error", "action", msg.name, "error", msg.err)
		}
		return m, nil

	case derivedDoneMsg:
		m.announceDerived(msg)
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.announceDerived(derivedDoneMsg{err: errors.Annotatef(msg.err, "preview %s", msg.container)})
			return m, nil
		}
		m.previews[msg.container] = msg.preview
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.runAction(m.fields[m.focus].action)
	case key.Matches(msg, m.keys.LoadRegion):
		return m, m.runAction(action.LoadRegion)
	case key.Matches(msg, m.keys.LoadNational):
		return m, m.runAction(action.LoadNational)
	case key.Matches(msg, m.keys.Post):
		return m, m.runAction(action.PostComment)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.runAction(action.RefreshComments)
	case key.Matches(msg, m.keys.EDA):
		return m, m.runAction(action.RunEDA)
	case key.Matches(msg, m.keys.Forecast):
		return m, m.runAction(action.RunForecast)
	case key.Matches(msg, m.keys.OpenCases):
		return m, m.open(domain.LinkOpenCases)
	case key.Matches(msg, m.keys.OpenDeaths):
		return m, m.open(domain.LinkOpenDeaths)
	case key.Matches(msg, m.keys.DownloadCSV):
		return m, m.download(domain.LinkDownloadCSV)
	case key.Matches(msg, m.keys.OpenForecast):
		return m, m.open(domain.LinkOpenForecast)
	case key.Matches(msg, m.keys.Preview):
		return m, m.fetchPreviews()
	}

	f := &m.fields[m.focus]
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != m.deps.Page.Value(f.id) {
		m.deps.Page.SetValue(f.id, v)
	}
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].input.Focus()
}

// syncFields mirrors resets done by actions (for example after a post).
func (m *Model) syncFields() {
	for i := range m.fields {
		if v := m.snap.Fields[m.fields[i].id]; v != m.fields[i].input.Value() {
			m.fields[i].input.SetValue(v)
		}
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes, ctx := m.changes, m.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return pageChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) runAction(name string) tea.Cmd {
	fn, err := m.deps.Actions.Resolve(name)
	if err != nil {
		return func() tea.Msg { return actionDoneMsg{name: name, err: err} }
	}
	return m.runFunc(name, fn)
}

func (m Model) runFunc(name string, fn action.Func) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{name: name, err: fn(ctx)}
	}
}

func (m Model) open(id domain.ControlID) tea.Cmd {
	derived := m.deps.Derived
	return func() tea.Msg {
		if derived == nil {
			return derivedDoneMsg{err: errors.NotSupportedf("opening %s", id)}
		}
		if err := derived.Open(id); err != nil {
			return derivedDoneMsg{err: err}
		}
		return derivedDoneMsg{text: "Opened " + string(id) + " in browser."}
	}
}

func (m Model) download(id domain.ControlID) tea.Cmd {
	derived, ctx := m.deps.Derived, m.ctx
	return func() tea.Msg {
		if derived == nil {
			return derivedDoneMsg{err: errors.NotSupportedf("downloading %s", id)}
		}
		dest, err := derived.Download(ctx, id)
		if err != nil {
			return derivedDoneMsg{err: err}
		}
		return derivedDoneMsg{text: "Saved " + dest}
	}
}

func (m Model) fetchPreviews() tea.Cmd {
	if m.deps.Previewer == nil || len(m.snap.Documents) == 0 {
		return nil
	}
	previewer, ctx := m.deps.Previewer, m.ctx
	var cmds []tea.Cmd
	for _, container := range documentOrder {
		ref, ok := m.snap.Documents[container]
		if !ok {
			continue
		}
		cmds = append(cmds, func() tea.Msg {
			p, err := previewer.Fetch(ctx, ref)
			return previewMsg{container: container, preview: p, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) announceDerived(msg derivedDoneMsg) {
	a := m.deps.Announcer
	if a == nil {
		return
	}
	switch {
	case msg.err == nil:
		token := a.Announce(msg.text, domain.SeveritySuccess)
		a.ClearAfter(token, m.deps.AutoClear)
	case errors.Is(msg.err, domain.ErrLinkDisabled):
		a.Announce("Nothing to open yet: "+msg.err.Error()+".", domain.SeverityWarn)
	default:
		a.Announce(msg.err.Error(), domain.SeverityError)
	}
}

var documentOrder = []domain.ContainerID{
	domain.ContainerEDACases,
	domain.ContainerEDADeaths,
	domain.ContainerForecastView,
}

var busyOrder = []domain.ControlID{
	domain.ControlLoadRegion,
	domain.ControlLoadNational,
	domain.ControlCommentSubmit,
	domain.ControlRefreshComments,
	domain.ControlRunEDA,
	domain.ControlRunForecast,
}

var linkOrder = []domain.ControlID{
	domain.LinkOpenCases,
	domain.LinkOpenDeaths,
	domain.LinkDownloadCSV,
	domain.LinkOpenForecast,
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	s := m.styles

	sb.WriteString(s.Title.Render("COVID-19 Dashboard"))
	sb.WriteString("\n")
	if st := m.snap.Status; !st.Cleared() {
		sb.WriteString(s.status(st.Severity).Render(render.SeverityLabel(st.Severity) + " " + st.Text))
	}
	sb.WriteString("\n")

	var busy []string
	for _, id := range busyOrder {
		if m.snap.Controls[id].Busy {
			busy = append(busy, string(id))
		}
	}
	if len(busy) > 0 {
		sb.WriteString(m.spinner.View() + " " + s.Muted.Render(strings.Join(busy, ", ")) + "\n")
	}

	sb.WriteString(s.Section.Render("Inputs") + "\n")
	for i, f := range m.fields {
		label := fmt.Sprintf("%-16s", f.label)
		if i == m.focus {
			label = s.Focused.Render("> " + label)
		} else {
			label = "  " + label
		}
		sb.WriteString(label + " " + f.input.View() + "\n")
	}

	chartWidth := max(10, m.width-4)
	for _, id := range []domain.ContainerID{domain.ContainerCasesChart, domain.ContainerDeathsChart} {
		chart, ok := m.snap.Charts[id]
		if !ok {
			continue
		}
		sb.WriteString(s.Section.Render(chart.Title) + "\n")
		sb.WriteString("  " + s.Chart.Render(render.Sparkline(chart.Daily, chartWidth)) + "\n")
		sb.WriteString("  " + s.Muted.Render(render.Summarize(chart).String()) + "\n")
	}

	if items, ok := m.snap.Comments[domain.ContainerComments]; ok {
		sb.WriteString(s.Section.Render(fmt.Sprintf("Comments (%d)", len(items))) + "\n")
		for i, c := range items {
			if i == maxComments {
				sb.WriteString(s.Muted.Render(fmt.Sprintf("  … %d more", len(items)-maxComments)) + "\n")
				break
			}
			sb.WriteString("  " + render.Comment(c) + "\n")
		}
	}

	if len(m.snap.Documents) > 0 {
		sb.WriteString(s.Section.Render("Reports") + "\n")
		for _, id := range documentOrder {
			ref, ok := m.snap.Documents[id]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", id, s.Muted.Render(ref)))
			if p, ok := m.previews[id]; ok {
				if p.Title != "" {
					sb.WriteString("    " + p.Title + "\n")
				}
				if p.Summary != "" {
					sb.WriteString("    " + s.Muted.Render(p.Summary) + "\n")
				}
			}
		}
	}

	sb.WriteString(s.Section.Render("Links") + "\n")
	for _, id := range linkOrder {
		state := m.snap.Controls[id]
		if state.Disabled || state.Target == "" {
			sb.WriteString("  " + s.Disabled.Render(string(id)) + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %s\n", id, state.Target))
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return errors.Trace(err)
}
