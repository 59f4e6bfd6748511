package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseTags("a, b ,, c"))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags(" , "))
}

func TestNewComment(t *testing.T) {
	c := NewComment("  ", " hi ", "", "x")
	assert.Equal(t, "Anonymous", c.Name)
	assert.Equal(t, "hi", c.Comment)
	assert.Nil(t, c.State)
	assert.Equal(t, "—", c.DisplayState())

	c = NewComment("Ann", "hi", " Ohio ", "")
	require.NotNil(t, c.State)
	assert.Equal(t, "Ohio", *c.State)
	assert.Equal(t, "", c.DisplayTags())
}

func TestNewChartMissingValues(t *testing.T) {
	rows := []SeriesRow{
		{Date: "2021-01-01", NewCases: Float(5)},
		{Date: "2021-01-02", MA7NewCases: Float(2.5)},
	}
	chart := NewChart(rows, FieldNewCases, FieldMA7NewCases, "t")
	assert.Equal(t, []string{"2021-01-01", "2021-01-02"}, chart.X)
	assert.Equal(t, []float64{5, 0}, chart.Daily)
	assert.Equal(t, []float64{0, 2.5}, chart.Average)

	assert.Empty(t, NewChart(nil, FieldNewDeaths, FieldMA7NewDeaths, "t").X)
}

func TestJobResult(t *testing.T) {
	job := JobResult{URLs: map[string]string{OutputCSV: "/r.csv"}}
	assert.Equal(t, "/r.csv", job.Output(OutputCSV))
	assert.Equal(t, "", JobResult{}.Output(OutputCSV))
	assert.Equal(t, "EDA failed", job.FailureReason("EDA failed"))
	assert.Equal(t, "no rows", JobResult{Error: "no rows"}.FailureReason("EDA failed"))
}
