package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"CovidDash/internal/domain"
	"CovidDash/internal/infrastructure/page"
)

func TestFollowPrintsStatusChanges(t *testing.T) {
	var buf bytes.Buffer
	pr := NewPrinter(&buf, 20)
	p := page.New()
	pr.Follow(p)

	p.ShowStatus(domain.StatusMessage{Text: "Loading Ohio…", Severity: domain.SeverityInfo})
	p.SetBusy(domain.ControlLoadRegion, true)
	p.ShowStatus(domain.StatusMessage{Text: "Loaded: Ohio", Severity: domain.SeveritySuccess})
	p.ShowStatus(domain.StatusMessage{Severity: domain.SeverityInfo})

	assert.Equal(t, "[info] Loading Ohio…\n[success] Loaded: Ohio\n", buf.String())
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	pr := NewPrinter(&buf, 20)
	p := page.New()

	rows := []domain.SeriesRow{
		{Date: "2021-01-01", NewCases: domain.Float(1)},
		{Date: "2021-01-02", NewCases: domain.Float(3)},
	}
	p.RenderTimeSeries(domain.ContainerCasesChart, rows, domain.FieldNewCases, domain.FieldMA7NewCases, "New Cases — Ohio")
	p.RenderCommentList(domain.ContainerComments, []domain.Comment{{Name: "Ann", Comment: "hi"}})
	p.EmbedDocument(domain.ContainerForecastView, "/static/report/f.html?t=1")
	p.BindLink(domain.LinkOpenForecast, "/static/report/f.html")

	pr.Print(p.Snapshot())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "New Cases — Ohio\n  ▁█\n"))
	assert.Contains(t, out, "Comments (1)\n  - Ann · —: hi\n")
	assert.Contains(t, out, "forecast: /static/report/f.html?t=1\n")
	assert.Contains(t, out, "open-forecast: /static/report/f.html\n")
	assert.NotContains(t, out, "New Deaths")
}
