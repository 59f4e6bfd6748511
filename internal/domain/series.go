package domain

// SeriesRow is one day of the case/death time series returned by the API.
// Numeric fields are optional on the wire; use Value to read them.
type SeriesRow struct {
	Date         string   `json:"date"`
	NewCases     *float64 `json:"new_cases,omitempty"`
	MA7NewCases  *float64 `json:"ma7_new_cases,omitempty"`
	NewDeaths    *float64 `json:"new_deaths,omitempty"`
	MA7NewDeaths *float64 `json:"ma7_new_deaths,omitempty"`
}

// SeriesField names a numeric column of SeriesRow.
type SeriesField string

const (
	FieldNewCases     SeriesField = "new_cases"
	FieldMA7NewCases  SeriesField = "ma7_new_cases"
	FieldNewDeaths    SeriesField = "new_deaths"
	FieldMA7NewDeaths SeriesField = "ma7_new_deaths"
)

// Value returns the field value, 0 when it is missing.
func (r SeriesRow) Value(field SeriesField) float64 {
	switch field {
	case FieldNewCases:
		return valueOr(r.NewCases, 0)
	case FieldMA7NewCases:
		return valueOr(r.MA7NewCases, 0)
	case FieldNewDeaths:
		return valueOr(r.NewDeaths, 0)
	case FieldMA7NewDeaths:
		return valueOr(r.MA7NewDeaths, 0)
	default:
		return 0
	}
}

// Chart is the render-ready form of a daily series and its moving average.
type Chart struct {
	Title   string
	X       []string
	Daily   []float64
	Average []float64
}

// NewChart projects rows onto x/y arrays. All three arrays have len(rows).
func NewChart(rows []SeriesRow, value, average SeriesField, title string) Chart {
	chart := Chart{
		Title:   title,
		X:       make([]string, len(rows)),
		Daily:   make([]float64, len(rows)),
		Average: make([]float64, len(rows)),
	}
	for i, row := range rows {
		chart.X[i] = row.Date
		chart.Daily[i] = row.Value(value)
		chart.Average[i] = row.Value(average)
	}
	return chart
}

// Float returns a pointer to v; handy for building rows in code.
func Float(v float64) *float64 {
	return &v
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
