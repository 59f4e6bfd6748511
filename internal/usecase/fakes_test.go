package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"

	"CovidDash/internal/control"
	"CovidDash/internal/domain"
	"CovidDash/internal/infrastructure/page"
	"CovidDash/internal/result"
	"CovidDash/internal/status"
)

// fakeAPI answers with canned results and records every call.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	state    func(state string) result.Result[[]domain.SeriesRow]
	national func() result.Result[[]domain.SeriesRow]
	comments func(state string) result.Result[[]domain.Comment]
	post     func(c domain.Comment) result.Result[struct{}]
	eda      func(state string) result.Result[domain.JobResult]
	forecast func(state string, days int) result.Result[domain.JobResult]

	posted []domain.Comment
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Posted() []domain.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Comment(nil), f.posted...)
}

func (f *fakeAPI) count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) StateSeries(_ context.Context, state string) result.Result[[]domain.SeriesRow] {
	f.record("state:" + state)
	if f.state == nil {
		return result.Err[[]domain.SeriesRow]("HTTP 404")
	}
	return f.state(state)
}

func (f *fakeAPI) NationalSeries(context.Context) result.Result[[]domain.SeriesRow] {
	f.record("national")
	if f.national == nil {
		return result.Ok([]domain.SeriesRow{})
	}
	return f.national()
}

func (f *fakeAPI) Comments(_ context.Context, state string) result.Result[[]domain.Comment] {
	f.record("comments:" + state)
	if f.comments == nil {
		return result.Ok([]domain.Comment{})
	}
	return f.comments(state)
}

func (f *fakeAPI) PostComment(_ context.Context, c domain.Comment) result.Result[struct{}] {
	f.record("post")
	f.mu.Lock()
	f.posted = append(f.posted, c)
	f.mu.Unlock()
	if f.post == nil {
		return result.Ok(struct{}{})
	}
	return f.post(c)
}

func (f *fakeAPI) RunEDA(_ context.Context, state string) result.Result[domain.JobResult] {
	f.record("eda:" + state)
	if f.eda == nil {
		return result.Err[domain.JobResult]("HTTP 500")
	}
	return f.eda(state)
}

func (f *fakeAPI) RunForecast(_ context.Context, state string, days int) result.Result[domain.JobResult] {
	f.record(fmt.Sprintf("forecast:%s:%d", state, days))
	if f.forecast == nil {
		return result.Err[domain.JobResult]("HTTP 500")
	}
	return f.forecast(state, days)
}

type recordingOpener struct {
	mu     sync.Mutex
	opened []string
}

func (o *recordingOpener) Open(u *url.URL) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, u.String())
	return nil
}

type stubDownloader struct {
	body string
	err  error
}

func (s stubDownloader) Download(_ context.Context, _ string, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.body)
	return err
}

type fixture struct {
	api   *fakeAPI
	page  *page.Page
	clock *testclock.Clock
	guard *control.Guard
	dash  *Dashboard
}

func newFixture(t *testing.T, api *fakeAPI, mutate ...func(*DashboardDeps)) *fixture {
	t.Helper()

	p := page.New()
	clk := testclock.NewClock(time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC))
	announcer := status.NewAnnouncer(p, clk)
	t.Cleanup(announcer.Close)
	guard := control.NewGuard(p)

	deps := DashboardDeps{
		API:       api,
		Announcer: announcer,
		Guard:     guard,
		Inputs:    p,
		Charts:    p,
		Comments:  p,
		Documents: p,
		Links:     p,
		Clock:     clk,
		Settings:  Settings{AutoClear: 1200 * time.Millisecond},
	}
	for _, fn := range mutate {
		fn(&deps)
	}

	return &fixture{api: api, page: p, clock: clk, guard: guard, dash: NewDashboard(deps)}
}

func (f *fixture) status() domain.StatusMessage {
	return f.page.Snapshot().Status
}

func rows(dates ...string) []domain.SeriesRow {
	out := make([]domain.SeriesRow, 0, len(dates))
	for i, d := range dates {
		v := float64(i + 1)
		out = append(out, domain.SeriesRow{
			Date:         d,
			NewCases:     domain.Float(v * 100),
			MA7NewCases:  domain.Float(v * 90),
			NewDeaths:    domain.Float(v),
			MA7NewDeaths: nil,
		})
	}
	return out
}
