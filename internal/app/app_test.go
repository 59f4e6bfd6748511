package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CovidDash/internal/action"
	"CovidDash/internal/config"
	"CovidDash/internal/domain"
)

func backend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Ohio", r.URL.Query().Get("state"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"date": "2021-01-01", "new_cases": 10, "ma7_new_cases": 8, "new_deaths": 1},
			{"date": "2021-01-02", "new_cases": 30, "ma7_new_cases": 12, "new_deaths": 2},
		})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /eda", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"insufficient data"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newApp(t *testing.T, baseURL string) *Application {
	t.Helper()

	cfg := config.Config{
		API:      config.APIConfig{BaseURL: baseURL, UserAgent: "CovidDash/test"},
		Status:   config.StatusConfig{AutoClear: time.Minute},
		Defaults: config.DefaultsConfig{Region: "California", ForecastDays: 30},
		Dashboard: config.DashboardConfig{
			InitialRegion: "Ohio",
			DownloadDir:   t.TempDir(),
		},
	}
	application, err := New(cfg, nil)
	require.NoError(t, err)
	return application
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(config.Config{API: config.APIConfig{BaseURL: "localhost"}}, nil)
	require.Error(t, err)
}

func TestInitialRegionPrefillsField(t *testing.T) {
	application := newApp(t, "http://localhost:8000")
	assert.Equal(t, "Ohio", application.Page().Value(domain.FieldRegion))
}

func TestRunLoadRegion(t *testing.T) {
	srv := backend(t)
	application := newApp(t, srv.URL)

	var out bytes.Buffer
	require.NoError(t, application.Run(context.Background(), action.LoadRegion, &out))

	assert.Contains(t, out.String(), "[info] Loading Ohio…\n")
	assert.Contains(t, out.String(), "[success] Loaded: Ohio\n")
	assert.Contains(t, out.String(), "New Cases — Ohio\n")
	assert.Contains(t, out.String(), "New Deaths — Ohio\n")
}

func TestRunReportsJobFailure(t *testing.T) {
	srv := backend(t)
	application := newApp(t, srv.URL)

	var out bytes.Buffer
	err := application.Run(context.Background(), action.RunEDA, &out)
	require.EqualError(t, err, "EDA failed: insufficient data")
	assert.Contains(t, out.String(), "[error] EDA failed: insufficient data\n")
	assert.NotContains(t, out.String(), "Links")
}

func TestRunUnknownAction(t *testing.T) {
	application := newApp(t, "http://localhost:8000")
	require.Error(t, application.Run(context.Background(), "nope", &bytes.Buffer{}))
}

func TestHealth(t *testing.T) {
	srv := backend(t)
	application := newApp(t, srv.URL)

	state, err := application.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", state)
}
