// Package config provides configuration management for the checkout CLI
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RDCHECKOUT"

var ErrMissingAPIKey = errors.New("gateway.api_key is required")

// Config holds all configuration for the CLI
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// GatewayConfig holds the checkout gateway connection settings
type GatewayConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	APISecret   string        `mapstructure:"api_secret"`
	Environment string        `mapstructure:"environment"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls transport instrumentation
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Service string `mapstructure:"service"`
}

// flagKeys maps CLI flag names to configuration keys
var flagKeys = map[string]string{
	"api-key":     "gateway.api_key",
	"api-secret":  "gateway.api_secret",
	"environment": "gateway.environment",
	"base-url":    "gateway.base_url",
	"timeout":     "gateway.timeout",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"metrics":     "metrics.enabled",
}

// Load reads configuration from, in increasing priority: defaults, the
// optional file at path, RDCHECKOUT_* environment variables and flags
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("gateway.environment", string(checkout.EnvironmentSandbox))
	v.SetDefault("gateway.timeout", checkout.DefaultTimeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service", "checkout")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range []string{"gateway.api_key", "gateway.api_secret", "gateway.base_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.Gateway.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ClientConfig converts the gateway settings into a checkout.ClientConfig
func (g GatewayConfig) ClientConfig() checkout.ClientConfig {
	return checkout.ClientConfig{
		APIKey:      g.APIKey,
		APISecret:   g.APISecret,
		Environment: checkout.Environment(g.Environment),
		BaseURL:     g.BaseURL,
		Timeout:     g.Timeout,
	}
}
