package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/juju/errors"

	"CovidDash/internal/config"
	"CovidDash/internal/domain"
	"CovidDash/internal/ports"
	"CovidDash/internal/result"
)

// Client talks to the dashboard backend and normalizes every reply.
type Client struct {
	base      *url.URL
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

var _ ports.DashboardAPI = (*Client)(nil)
var _ ports.Downloader = (*Client)(nil)

// NewClient creates a reusable HTTP client. A nil httpClient gets a default
// one whose timeout comes from cfg (zero means no timeout).
func NewClient(cfg config.APIConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, errors.Annotatef(err, "parse api base url %q", cfg.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.NotValidf("api base url %q", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		base:      base,
		userAgent: cfg.UserAgent,
		http:      httpClient,
		logger:    logger,
	}, nil
}

// StateSeries fetches the daily series of one state.
func (c *Client) StateSeries(ctx context.Context, state string) result.Result[[]domain.SeriesRow] {
	query := url.Values{}
	query.Set("state", state)
	return Decode[[]domain.SeriesRow](c.do(ctx, http.MethodGet, "cases", query, nil))
}

// NationalSeries fetches the US aggregate series.
func (c *Client) NationalSeries(ctx context.Context) result.Result[[]domain.SeriesRow] {
	return Decode[[]domain.SeriesRow](c.do(ctx, http.MethodGet, "cases/us", nil, nil))
}

// Comments lists comments, filtered by state when state is not blank.
func (c *Client) Comments(ctx context.Context, state string) result.Result[[]domain.Comment] {
	var query url.Values
	if s := strings.TrimSpace(state); s != "" {
		query = url.Values{}
		query.Set("state", s)
	}
	return Decode[[]domain.Comment](c.do(ctx, http.MethodGet, "comments", query, nil))
}

// PostComment submits a comment. Any 2xx reply counts as accepted whatever
// its body.
func (c *Client) PostComment(ctx context.Context, comment domain.Comment) result.Result[struct{}] {
	return result.Then(c.do(ctx, http.MethodPost, "comments", nil, comment), func(Body) result.Result[struct{}] {
		return result.Ok(struct{}{})
	})
}

// RunEDA starts an exploratory analysis for state.
func (c *Client) RunEDA(ctx context.Context, state string) result.Result[domain.JobResult] {
	payload := map[string]any{"state": state}
	return Decode[domain.JobResult](c.do(ctx, http.MethodPost, "eda", nil, payload))
}

// RunForecast builds a forecast of days days for state.
func (c *Client) RunForecast(ctx context.Context, state string, days int) result.Result[domain.JobResult] {
	payload := map[string]any{"state": state, "days": days}
	return Decode[domain.JobResult](c.do(ctx, http.MethodPost, "forecast", nil, payload))
}

type healthReply struct {
	Status string `json:"status"`
}

// Health reports the backend status string ("ok" when healthy).
func (c *Client) Health(ctx context.Context) result.Result[string] {
	reply := Decode[healthReply](c.do(ctx, http.MethodGet, "health", nil, nil))
	return result.Then(reply, func(h healthReply) result.Result[string] {
		if h.Status == "" {
			return result.Err[string]("health reply has no status")
		}
		return result.Ok(h.Status)
	})
}

// Resolve turns a document reference returned by a job (usually a path such
// as /static/report/x.html) into an absolute URL on the backend host.
func (c *Client) Resolve(ref string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, errors.Annotatef(err, "parse document url %q", ref)
	}
	return c.base.ResolveReference(parsed), nil
}

// Download copies the referenced document into w.
func (c *Client) Download(ctx context.Context, ref string, w io.Writer) error {
	target, err := c.Resolve(ref)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.New(transportReason(err))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.New(Normalize(resp, nil).Reason())
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	return nil
}

// Endpoint builds the absolute URL of an API path with its query.
func (c *Client) Endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) result.Result[Body] {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return result.Err[Body](fmt.Sprintf("marshal payload: %v", err))
		}
		reader = bytes.NewReader(body)
	}

	endpoint := c.Endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return result.Err[Body](fmt.Sprintf("new request: %v", err))
	}
	c.decorate(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", endpoint)
	resp, err := c.http.Do(req)
	res := Normalize(resp, err)
	if !res.IsOK() {
		c.logger.Debug("api request failed", "method", method, "url", endpoint, "reason", res.Reason())
	}
	return res
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
