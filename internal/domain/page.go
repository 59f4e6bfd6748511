package domain

// ControlID names a trigger control (button) on the dashboard page.
type ControlID string

const (
	ControlLoadRegion      ControlID = "load-region"
	ControlLoadNational    ControlID = "load-national"
	ControlCommentSubmit   ControlID = "comment-submit"
	ControlRefreshComments ControlID = "refresh-comments"
	ControlRunEDA          ControlID = "run-eda"
	ControlRunForecast     ControlID = "run-forecast"

	// Derived links, enabled only after a successful job.
	LinkOpenCases    ControlID = "open-cases"
	LinkOpenDeaths   ControlID = "open-deaths"
	LinkDownloadCSV  ControlID = "download-csv"
	LinkOpenForecast ControlID = "open-forecast"
)

// ContainerID names a render target on the page.
type ContainerID string

const (
	ContainerCasesChart   ContainerID = "cases-chart"
	ContainerDeathsChart  ContainerID = "deaths-chart"
	ContainerComments     ContainerID = "comments"
	ContainerEDACases     ContainerID = "eda-cases"
	ContainerEDADeaths    ContainerID = "eda-deaths"
	ContainerForecastView ContainerID = "forecast"
)

// FieldID names a text input on the page.
type FieldID string

const (
	FieldRegion        FieldID = "region"
	FieldCommentName   FieldID = "comment-name"
	FieldCommentText   FieldID = "comment-text"
	FieldCommentState  FieldID = "comment-state"
	FieldCommentTags   FieldID = "comment-tags"
	FieldCommentFilter FieldID = "comment-filter"
	FieldEDARegion     FieldID = "eda-region"
	FieldForecastState FieldID = "forecast-region"
	FieldForecastDays  FieldID = "forecast-days"
)
