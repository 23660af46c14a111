package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

type Config struct {
	API      APIConfig
	Mock     MockConfig
	Metrics  MetricsConfig
	LogLevel string
}

type APIConfig struct {
	Key            string
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type MockConfig struct {
	Host           string
	Port           int
	APIKeys        []string
	RateLimitRPS   float64
	RateLimitBurst int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Addr returns the listen address of the fake API server.
func (m MockConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Load reads config.yaml from the usual search paths, then applies SCALE_*
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.scale")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFile reads the given file. Unlike Load, the file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return unmarshal(v)
}

// ClientOptions converts the api section into SDK client options.
func (c *Config) ClientOptions() []scaleapi.Option {
	var opts []scaleapi.Option
	if c.API.BaseURL != "" {
		opts = append(opts, scaleapi.WithBaseURL(c.API.BaseURL))
	}
	if c.API.Timeout > 0 {
		opts = append(opts, scaleapi.WithTimeout(c.API.Timeout))
	}
	if c.API.RateLimitRPS > 0 {
		opts = append(opts, scaleapi.WithRateLimit(c.API.RateLimitRPS, c.API.RateLimitBurst))
	}
	return opts
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// api.key <-> SCALE_API_KEY
	v.SetEnvPrefix("SCALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.baseurl", scaleapi.DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.ratelimitrps", 0.0)
	v.SetDefault("api.ratelimitburst", 1)

	// Fake API defaults
	v.SetDefault("mock.host", "127.0.0.1")
	v.SetDefault("mock.port", 8089)
	v.SetDefault("mock.apikeys", []string{"test_key"})
	v.SetDefault("mock.ratelimitrps", 0.0)
	v.SetDefault("mock.ratelimitburst", 10)
	v.SetDefault("mock.readtimeout", 30*time.Second)
	v.SetDefault("mock.writetimeout", 30*time.Second)
	v.SetDefault("mock.idletimeout", 120*time.Second)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Logging defaults
	v.SetDefault("loglevel", "info")
}
