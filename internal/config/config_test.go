package config_test

import (
	"os"
	"path/filepath"
	"scanconsole/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
backend:
  host: scanner.example.com
  deployedURL: https://api.example.com
poller:
  interval: 500ms
  maxTransportFailures: 2
monitor:
  interval: 1s
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 500*time.Millisecond, cfg.Poller.Interval)
	require.Equal(t, 2, cfg.Poller.MaxTransportFailures)
	require.Equal(t, 30*time.Second, cfg.Poller.MaxBackoff)
	require.Equal(t, time.Second, cfg.Monitor.Interval)
	require.Equal(t, "https://api.example.com", cfg.BaseURL())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 3*time.Second, cfg.Poller.Interval)
	require.Equal(t, 5, cfg.Poller.MaxTransportFailures)
	require.Equal(t, 3*time.Second, cfg.Monitor.Interval)
	require.Equal(t, "http://localhost:5050", cfg.BaseURL())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("poller: [unclosed"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestConfig_BaseURL(t *testing.T) {
	var cfg config.Config
	cfg.Backend.LocalURL = "http://localhost:5050"
	cfg.Backend.DeployedURL = "https://deployed.example.com"

	cfg.Backend.Host = "127.0.0.1"
	require.Equal(t, "http://localhost:5050", cfg.BaseURL())

	cfg.Backend.Host = "dashboard.example.com"
	require.Equal(t, "https://deployed.example.com", cfg.BaseURL())

	cfg.Backend.BaseURL = " http://10.0.0.2:5050 "
	require.Equal(t, "http://10.0.0.2:5050", cfg.BaseURL())
}

func TestIsLoopback(t *testing.T) {
	for _, host := range []string{"localhost", "LOCALHOST", "127.0.0.1", "::1", "[::1]:8080", "localhost:5050", "127.0.0.2"} {
		require.True(t, config.IsLoopback(host), host)
	}
	for _, host := range []string{"", "example.com", "10.0.0.1", "localhost.example.com"} {
		require.False(t, config.IsLoopback(host), host)
	}
}
