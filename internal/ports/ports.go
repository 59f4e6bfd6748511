package ports

import (
	"context"
	"io"
	"net/url"
	"time"

	"CovidDash/internal/domain"
	"CovidDash/internal/result"
)

// DashboardAPI is the backend consumed by the orchestrators. Every call
// resolves to exactly one Result; none of them panics or blocks forever
// unless the context does.
type DashboardAPI interface {
	StateSeries(ctx context.Context, state string) result.Result[[]domain.SeriesRow]
	NationalSeries(ctx context.Context) result.Result[[]domain.SeriesRow]
	Comments(ctx context.Context, state string) result.Result[[]domain.Comment]
	PostComment(ctx context.Context, comment domain.Comment) result.Result[struct{}]
	RunEDA(ctx context.Context, state string) result.Result[domain.JobResult]
	RunForecast(ctx context.Context, state string, days int) result.Result[domain.JobResult]
}

// Downloader saves a document referenced by a derived link.
type Downloader interface {
	Download(ctx context.Context, ref string, w io.Writer) error
}

// StatusSurface displays the single status slot.
type StatusSurface interface {
	ShowStatus(msg domain.StatusMessage)
}

// Controls toggles the busy/disabled state of trigger controls.
type Controls interface {
	SetBusy(id domain.ControlID, busy bool)
}

// Inputs reads and resets text fields of the page.
type Inputs interface {
	Value(id domain.FieldID) string
	Reset(ids ...domain.FieldID)
}

// ChartRenderer draws a daily series and its moving average.
type ChartRenderer interface {
	RenderTimeSeries(container domain.ContainerID, rows []domain.SeriesRow, value, average domain.SeriesField, title string)
}

// CommentRenderer replaces the content of a comment list.
type CommentRenderer interface {
	RenderCommentList(container domain.ContainerID, items []domain.Comment)
}

// DocumentEmbedder shows a document by URL inside a container.
type DocumentEmbedder interface {
	EmbedDocument(container domain.ContainerID, url string)
}

// Links binds derived actions to URLs. An empty URL disables the link.
type Links interface {
	BindLink(id domain.ControlID, url string)
	LinkTarget(id domain.ControlID) (string, bool)
}

// Opener shows a URL in a new view (a browser window).
type Opener interface {
	Open(u *url.URL) error
}

// Resolver turns a document reference into an absolute URL.
type Resolver interface {
	Resolve(ref string) (*url.URL, error)
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
