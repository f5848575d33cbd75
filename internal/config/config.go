package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ARDESK_API_BASE_URL.
const EnvPrefix = "ARDESK"

// Config holds all application configuration.
type Config struct {
	// Web front
	Port     int
	LogLevel string

	// Receivables API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Resilience
	MaxReadRetries int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Observability
	OTLPEndpoint string

	// Terminal
	AssumeYes bool
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"api-url":   "api.base_url",
	"timeout":   "http.timeout",
	"port":      "http.port",
	"log-level": "log.level",
	"sim":       "ui.assume_yes",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("http.timeout", time.Duration(0))
	v.SetDefault("http.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("resilience.max_read_retries", 0)
	v.SetDefault("resilience.initial_backoff", 100*time.Millisecond)
	v.SetDefault("resilience.max_concurrency", 8)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("ui.assume_yes", false)
}

// Load reads configuration.
//
// Priority (highest to lowest):
//  1. Flags that were set on the command line
//  2. Environment variables with the ARDESK_ prefix; a .env file is loaded
//     first and never overrides the real environment
//  3. ardesk.yaml in the working directory, or the file named by --config
//  4. Built-in defaults
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("ardesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Port:     v.GetInt("http.port"),
		LogLevel: v.GetString("log.level"),

		APIBaseURL:  strings.TrimRight(v.GetString("api.base_url"), "/"),
		HTTPTimeout: v.GetDuration("http.timeout"),

		MaxReadRetries: v.GetInt("resilience.max_read_retries"),
		InitialBackoff: v.GetDuration("resilience.initial_backoff"),
		MaxConcurrency: v.GetInt("resilience.max_concurrency"),

		OTLPEndpoint: v.GetString("otel.endpoint"),

		AssumeYes: v.GetBool("ui.assume_yes"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.Port)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http.timeout must not be negative: %s", c.HTTPTimeout)
	}
	if c.MaxReadRetries < 0 {
		return fmt.Errorf("resilience.max_read_retries must not be negative: %d", c.MaxReadRetries)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("resilience.max_concurrency must be at least 1: %d", c.MaxConcurrency)
	}
	return nil
}
