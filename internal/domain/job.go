package domain

// Named outputs of an EDA run.
const (
	OutputDailyCasesHTML  = "daily_cases_html"
	OutputDailyDeathsHTML = "daily_deaths_html"
	OutputCSV             = "csv"
)

// JobResult is the reply of a long-running analysis job (EDA or forecast).
// OK=false is a domain failure even when the transport succeeded.
type JobResult struct {
	OK    bool              `json:"ok"`
	Error string            `json:"error,omitempty"`
	URLs  map[string]string `json:"urls,omitempty"`
	URL   string            `json:"url,omitempty"`
}

// Output returns a named output URL or "" when absent.
func (j JobResult) Output(name string) string {
	if j.URLs == nil {
		return ""
	}
	return j.URLs[name]
}

// FailureReason returns the job error text, or fallback when none was given.
func (j JobResult) FailureReason(fallback string) string {
	if j.Error != "" {
		return j.Error
	}
	return fallback
}
