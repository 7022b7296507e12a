// Package config provides centralized configuration shared by cmd/api and
// cmd/ingest.
//
// Values are layered: struct defaults, then an optional YAML file
// (CONFIG_PATH, else ./config.yaml), then environment variables. Keys are
// the lower-cased environment names, so DB_POOL_MAX_CONNS in the
// environment and db_pool_max_conns in YAML set the same field.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultMaxSeasons caps how many seasons one team request may span. Each
// season is one throttled Baseball-Reference fetch.
const DefaultMaxSeasons = 10

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// Config is populated from defaults, the config file and the environment.
type Config struct {
	// Database
	DatabaseURL          string `koanf:"database_url" validate:"required"`
	DBPoolMinConns       int    `koanf:"db_pool_min_conns" validate:"gte=0"`
	DBPoolMaxConns       int    `koanf:"db_pool_max_conns" validate:"gte=1,gtefield=DBPoolMinConns"`
	DBPoolMaxLifeMinutes int    `koanf:"db_pool_max_life_minutes" validate:"gte=1"`

	// API server
	APIHost     string `koanf:"api_host"`
	APIPort     int    `koanf:"api_port" validate:"gte=1,lte=65535"`
	Environment string `koanf:"environment" validate:"oneof=development staging production"`
	Debug       bool   `koanf:"debug"`

	// CORS
	CORSAllowOrigins     []string `koanf:"cors_allow_origins" validate:"min=1"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials"`

	// Baseball-Reference
	BRefBaseURL           string `koanf:"bref_base_url" validate:"required,url"`
	BRefRequestsPerMinute int    `koanf:"bref_requests_per_minute" validate:"gte=0"`
	BRefTimeoutSeconds    int    `koanf:"bref_timeout_seconds" validate:"gte=1"`
	BRefUserAgent         string `koanf:"bref_user_agent"`
	BRefMaxSeasons        int    `koanf:"bref_max_seasons" validate:"gte=1"`

	// RequestTimeoutSeconds bounds how long a handler may run.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds" validate:"gte=1"`

	// Observability
	LogLevel       string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat      string `koanf:"log_format" validate:"oneof=json console"`
	MetricsEnabled bool   `koanf:"metrics_enabled"`
}

func defaultConfig() *Config {
	return &Config{
		DBPoolMinConns:       2,
		DBPoolMaxConns:       10,
		DBPoolMaxLifeMinutes: 30,

		APIHost:     "0.0.0.0",
		APIPort:     8000,
		Environment: "development",

		// TODO: narrow origins and drop credentials once the frontend hosts
		// are fixed.
		CORSAllowOrigins:     []string{"*"},
		CORSAllowCredentials: true,

		BRefBaseURL:           "https://www.baseball-reference.com",
		BRefRequestsPerMinute: 20,
		BRefTimeoutSeconds:    30,
		BRefUserAgent:         "scoracle-baseball/1.0",
		BRefMaxSeasons:        DefaultMaxSeasons,

		RequestTimeoutSeconds: 60,

		LogLevel:       "info",
		LogFormat:      "json",
		MetricsEnabled: true,
	}
}

// sliceKeys are split on commas when they arrive as a single string.
var sliceKeys = []string{"cors_allow_origins"}

// Load reads configuration with defaults < config file < environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := splitSlices(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// DBPoolMaxLife is the maximum lifetime of a pooled connection.
func (c *Config) DBPoolMaxLife() time.Duration {
	return time.Duration(c.DBPoolMaxLifeMinutes) * time.Minute
}

// BRefTimeout is the per-request timeout for Baseball-Reference.
func (c *Config) BRefTimeout() time.Duration {
	return time.Duration(c.BRefTimeoutSeconds) * time.Second
}

// RequestTimeout is the deadline put on every API request context.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// OpenCORS reports whether any origin may send credentialed requests.
func (c *Config) OpenCORS() bool {
	return c.CORSAllowCredentials && slices.Contains(c.CORSAllowOrigins, "*")
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitSlices(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(key, out); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}
