package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the scanning backend, the report
// poller, the protection monitor, logging and metrics.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Backend contains everything needed to reach the scanning backend
	Backend struct {
		// BaseURL overrides the automatic local/deployed endpoint selection when set
		BaseURL string `env:"BACKEND_BASE_URL" yaml:"baseURL"`
		// LocalURL is used when Host is a loopback name
		LocalURL string `env:"BACKEND_LOCAL_URL" env-default:"http://localhost:5050" yaml:"localURL"`
		// DeployedURL is used for every other host
		DeployedURL string `env:"BACKEND_DEPLOYED_URL" env-default:"https://sentinel-backend.onrender.com" yaml:"deployedURL"` //nolint: lll
		// Host is the host name the console is running against
		Host string `env:"BACKEND_HOST" env-default:"localhost" yaml:"host"`
		// RequestTimeout bounds status, history and monitor requests
		RequestTimeout time.Duration `env:"BACKEND_REQUEST_TIMEOUT" env-default:"15s" yaml:"requestTimeout"`
		// UploadTimeout bounds scan submissions, which may carry large files
		UploadTimeout time.Duration `env:"BACKEND_UPLOAD_TIMEOUT" env-default:"2m" yaml:"uploadTimeout"`
	} `yaml:"backend"`

	// Poller configures report status polling
	Poller struct {
		// Interval between two status queries
		Interval time.Duration `env:"POLLER_INTERVAL" env-default:"3s" yaml:"interval"`
		// MaxTransportFailures is the number of consecutive failed queries after which a poll gives up
		MaxTransportFailures int `env:"POLLER_MAX_TRANSPORT_FAILURES" env-default:"5" yaml:"maxTransportFailures"`
		// MaxBackoff caps the wait after a failed query
		MaxBackoff time.Duration `env:"POLLER_MAX_BACKOFF" env-default:"30s" yaml:"maxBackoff"`
	} `yaml:"poller"`

	// Monitor configures the protection view refreshers
	Monitor struct {
		// Interval between two refreshes of the activity log and the quarantine list
		Interval time.Duration `env:"MONITOR_INTERVAL" env-default:"3s" yaml:"interval"`
	} `yaml:"monitor"`

	// Logging configures log output
	Logging struct {
		// File receives logs while the interactive console owns the terminal
		File string `env:"LOGGING_FILE" env-default:"scanconsole.log" yaml:"file"`
	} `yaml:"logging"`

	// Metrics configures the prometheus endpoint
	Metrics struct {
		// Addr is the listen address of the metrics endpoint, empty disables it
		Addr string `env:"METRICS_ADDR" yaml:"addr"`
		// Path defines the URL path where metrics are exposed
		Path string `env:"METRICS_PATH" env-default:"/metrics" yaml:"path"`
	} `yaml:"metrics"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error; defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	}

	return &cfg, nil
}

// BaseURL returns the backend endpoint: the explicit override if any, the
// local endpoint for loopback hosts, the deployed endpoint otherwise.
func (c *Config) BaseURL() string {
	switch {
	case strings.TrimSpace(c.Backend.BaseURL) != "":
		return strings.TrimSpace(c.Backend.BaseURL)
	case IsLoopback(c.Backend.Host):
		return c.Backend.LocalURL
	default:
		return c.Backend.DeployedURL
	}
}

// IsLoopback reports whether host names the local machine.
func IsLoopback(host string) bool {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}
