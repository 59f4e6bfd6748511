package page

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CovidDash/internal/domain"
)

func TestNewPageDisablesDerivedLinks(t *testing.T) {
	t.Parallel()

	p := New()
	for _, id := range []domain.ControlID{domain.LinkOpenCases, domain.LinkOpenDeaths, domain.LinkDownloadCSV, domain.LinkOpenForecast} {
		assert.True(t, p.Control(id).Disabled, id)
		_, ok := p.LinkTarget(id)
		assert.False(t, ok, id)
	}
	assert.Empty(t, p.Snapshot().EnabledLinks())
}

func TestBusyAndLinks(t *testing.T) {
	t.Parallel()

	p := New()
	p.SetBusy(domain.ControlRunEDA, true)
	assert.Equal(t, ControlState{Disabled: true, Busy: true}, p.Control(domain.ControlRunEDA))
	p.SetBusy(domain.ControlRunEDA, false)
	assert.Equal(t, ControlState{}, p.Control(domain.ControlRunEDA))

	p.BindLink(domain.LinkDownloadCSV, "/static/report/ohio.csv")
	p.BindLink(domain.LinkOpenCases, "")
	target, ok := p.LinkTarget(domain.LinkDownloadCSV)
	require.True(t, ok)
	assert.Equal(t, "/static/report/ohio.csv", target)
	assert.Equal(t, []domain.ControlID{domain.LinkDownloadCSV}, p.Snapshot().EnabledLinks())
}

func TestFieldsAndRenders(t *testing.T) {
	t.Parallel()

	p := New()
	var changes atomic.Int32
	p.OnChange(func() {
		changes.Add(1)
		_ = p.Snapshot()
	})

	p.SetValue(domain.FieldCommentText, "hello")
	p.SetValue(domain.FieldCommentTags, "a,b")
	p.Reset(domain.FieldCommentText, domain.FieldCommentTags)
	assert.Empty(t, p.Value(domain.FieldCommentText))

	rows := []domain.SeriesRow{{Date: "2021-01-01", NewCases: domain.Float(4)}}
	p.RenderTimeSeries(domain.ContainerCasesChart, rows, domain.FieldNewCases, domain.FieldMA7NewCases, "New Cases — USA")
	p.RenderCommentList(domain.ContainerComments, []domain.Comment{{Name: "Ann", Comment: "hi"}})
	p.EmbedDocument(domain.ContainerForecastView, "/static/report/f.html?t=1")
	p.ShowStatus(domain.StatusMessage{Text: "Loaded: USA", Severity: domain.SeveritySuccess})

	snap := p.Snapshot()
	assert.Equal(t, []float64{4}, snap.Charts[domain.ContainerCasesChart].Daily)
	assert.Equal(t, []float64{0}, snap.Charts[domain.ContainerCasesChart].Average)
	assert.Len(t, snap.Comments[domain.ContainerComments], 1)
	assert.Equal(t, "/static/report/f.html?t=1", snap.Documents[domain.ContainerForecastView])
	assert.Equal(t, "Loaded: USA", snap.Status.Text)
	assert.EqualValues(t, 7, changes.Load())
}
