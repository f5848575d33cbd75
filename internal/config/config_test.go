package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/boddenberg/ardesk-go/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("api-url", "http://localhost:5000", "")
	flags.Int("port", 8080, "")
	flags.Bool("sim", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Zero(t, cfg.MaxReadRetries, "reads are not retried unless configured")
	assert.Equal(t, 100*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.False(t, cfg.AssumeYes)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ARDESK_API_BASE_URL", "https://contas.example.com/")
	t.Setenv("ARDESK_HTTP_TIMEOUT", "5s")
	t.Setenv("ARDESK_RESILIENCE_MAX_READ_RETRIES", "2")
	t.Setenv("ARDESK_LOG_LEVEL", "debug")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://contas.example.com", cfg.APIBaseURL, "trailing slash trimmed")
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.MaxReadRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFileThenEnvThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ardesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://from-file:5000
http:
  port: 9000
resilience:
  max_concurrency: 2
`), 0o600))

	t.Setenv("ARDESK_HTTP_PORT", "9100")

	cfg, err := config.Load(newFlags(t, "--config", path, "--sim"))
	require.NoError(t, err)

	assert.Equal(t, "http://from-file:5000", cfg.APIBaseURL)
	assert.Equal(t, 9100, cfg.Port, "env beats file")
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.True(t, cfg.AssumeYes)

	cfg, err = config.Load(newFlags(t, "--config", path, "--port", "9200"))
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port, "flag beats env")
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := config.Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative base url", map[string]string{"ARDESK_API_BASE_URL": "localhost:5000"}},
		{"bad scheme", map[string]string{"ARDESK_API_BASE_URL": "ftp://host"}},
		{"port out of range", map[string]string{"ARDESK_HTTP_PORT": "70000"}},
		{"negative retries", map[string]string{"ARDESK_RESILIENCE_MAX_READ_RETRIES": "-1"}},
		{"zero concurrency", map[string]string{"ARDESK_RESILIENCE_MAX_CONCURRENCY": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(nil)
			assert.Error(t, err)
		})
	}
}
