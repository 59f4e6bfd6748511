// Package render turns page content into plain text shared by the
// terminal hosts.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"CovidDash/internal/domain"
)

var bars = []rune("▁▂▃▄▅▆▇█")

// Summary condenses a chart for a one-line legend.
type Summary struct {
	Days        int
	From, To    string
	Last        float64
	Peak        float64
	Mean        float64
	LastAverage float64
}

// Summarize computes the legend of chart. An empty chart yields a zero
// Summary.
func Summarize(chart domain.Chart) Summary {
	s := Summary{Days: len(chart.X)}
	if s.Days == 0 {
		return s
	}
	s.From, s.To = chart.X[0], chart.X[s.Days-1]

	if len(chart.Daily) > 0 {
		s.Last = chart.Daily[len(chart.Daily)-1]
		s.Peak, _ = stats.Max(chart.Daily)
		s.Mean, _ = stats.Mean(chart.Daily)
	}
	if len(chart.Average) > 0 {
		s.LastAverage = chart.Average[len(chart.Average)-1]
	}
	return s
}

// String formats the legend.
func (s Summary) String() string {
	if s.Days == 0 {
		return "no data"
	}
	return fmt.Sprintf("%s..%s (%d days)  last %s  7d avg %s  peak %s  mean %s",
		s.From, s.To, s.Days, Number(s.Last), Number(s.LastAverage), Number(s.Peak), Number(s.Mean))
}

// Sparkline draws values in at most width cells, averaging neighbouring
// points when there are more values than cells.
func Sparkline(values []float64, width int) string {
	points := Resample(values, width)
	if len(points) == 0 {
		return ""
	}

	lo, _ := stats.Min(points)
	hi, _ := stats.Max(points)
	span := hi - lo

	var sb strings.Builder
	for _, v := range points {
		level := 0
		if span > 0 {
			level = int(math.Round((v - lo) / span * float64(len(bars)-1)))
		}
		sb.WriteRune(bars[level])
	}
	return sb.String()
}

// Resample reduces values to width buckets by their mean. width <= 0
// keeps every value.
func Resample(values []float64, width int) []float64 {
	n := len(values)
	if width <= 0 || n <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := range out {
		lo, hi := i*n/width, (i+1)*n/width
		out[i], _ = stats.Mean(values[lo:hi])
	}
	return out
}

// Number prints v rounded, with thousands kept readable.
func Number(v float64) string {
	r, _ := stats.Round(v, 0)
	switch {
	case math.Abs(r) >= 1e6:
		return fmt.Sprintf("%.1fM", r/1e6)
	case math.Abs(r) >= 1e4:
		return fmt.Sprintf("%.1fk", r/1e3)
	default:
		return fmt.Sprintf("%.0f", r)
	}
}

// Comment formats one comment list entry: "name · state · tags: text".
func Comment(c domain.Comment) string {
	head := c.DisplayName() + " · " + c.DisplayState()
	if tags := c.DisplayTags(); tags != "" {
		head += " · " + tags
	}
	return head + ": " + c.Comment
}

// SeverityLabel is the bracketed tag printed before a status text.
func SeverityLabel(sev domain.Severity) string {
	if sev == "" {
		sev = domain.SeverityInfo
	}
	return "[" + string(sev) + "]"
}
