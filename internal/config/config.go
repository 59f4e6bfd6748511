package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "COVIDASH_CONFIG"
	apiURLEnv         = "COVIDASH_API_URL"
	logLevelEnv       = "COVIDASH_LOG_LEVEL"
	logPathEnv        = "COVIDASH_LOG_PATH"
	initialRegionEnv  = "COVIDASH_INITIAL_REGION"
	forecastDaysEnv   = "COVIDASH_FORECAST_DAYS"
	defaultAutoClear  = 1200 * time.Millisecond
	defaultRegionName = "California"
	defaultDays       = 30
)

// Config holds high-level settings required across the application.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Status    StatusConfig    `yaml:"status"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig describes how to reach the dashboard backend.
type APIConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// StatusConfig tunes the status line.
type StatusConfig struct {
	AutoClear time.Duration `yaml:"autoClear"`
}

// DefaultsConfig holds values used when optional inputs are blank.
type DefaultsConfig struct {
	Region       string `yaml:"region"`
	ForecastDays int    `yaml:"forecastDays"`
}

// DashboardConfig covers start-up and background behaviour of the page.
type DashboardConfig struct {
	InitialRegion   string        `yaml:"initialRegion"`
	CommentsRefresh time.Duration `yaml:"commentsRefresh"`
	DownloadDir     string        `yaml:"downloadDir"`
}

// LoggingConfig selects log verbosity and destination.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads .env, then YAML configuration (if present), then applies
// environment overrides. path wins over COVIDASH_CONFIG when non-empty.
func Load(path string) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiURLEnv); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(logPathEnv); v != "" {
		c.Logging.Path = v
	}

	if v := os.Getenv(initialRegionEnv); v != "" {
		c.Dashboard.InitialRegion = v
	}

	if v := os.Getenv(forecastDaysEnv); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.Defaults.ForecastDays = days
		} else {
			log.Printf("config: ignoring %s=%q: %v", forecastDaysEnv, v, err)
		}
	}
}

func (c *Config) normalize() {
	if c.Status.AutoClear <= 0 {
		c.Status.AutoClear = defaultAutoClear
	}
	if c.Defaults.Region == "" {
		c.Defaults.Region = defaultRegionName
	}
	if c.Defaults.ForecastDays <= 0 {
		c.Defaults.ForecastDays = defaultDays
	}
	if c.API.Timeout < 0 {
		c.API.Timeout = 0
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.UserAgent != "" {
		base.API.UserAgent = override.API.UserAgent
	}
	if override.API.Timeout != 0 {
		base.API.Timeout = override.API.Timeout
	}

	if override.Status.AutoClear != 0 {
		base.Status.AutoClear = override.Status.AutoClear
	}

	if override.Defaults.Region != "" {
		base.Defaults.Region = override.Defaults.Region
	}
	if override.Defaults.ForecastDays != 0 {
		base.Defaults.ForecastDays = override.Defaults.ForecastDays
	}

	if override.Dashboard.InitialRegion != "" {
		base.Dashboard.InitialRegion = override.Dashboard.InitialRegion
	}
	if override.Dashboard.CommentsRefresh != 0 {
		base.Dashboard.CommentsRefresh = override.Dashboard.CommentsRefresh
	}
	if override.Dashboard.DownloadDir != "" {
		base.Dashboard.DownloadDir = override.Dashboard.DownloadDir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Path != "" {
		base.Logging.Path = override.Logging.Path
	}

	return base
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			UserAgent: "CovidDash/1.0",
		},
		Status:   StatusConfig{AutoClear: defaultAutoClear},
		Defaults: DefaultsConfig{Region: defaultRegionName, ForecastDays: defaultDays},
		Dashboard: DashboardConfig{
			DownloadDir: ".",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
