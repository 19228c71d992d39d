// file: config/config.go

// Package config defines the sidecar configuration and loads it from a
// YAML/JSON file and environment variables via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete hpos-admin-auth configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	State   StateConfig   `mapstructure:"state"`
	Logging LogConfig     `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig configures the verification HTTP listener
type ServerConfig struct {
	Address             string        `mapstructure:"address"`
	ReadTimeout         time.Duration `mapstructure:"readTimeout"`
	WriteTimeout        time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout         time.Duration `mapstructure:"idleTimeout"`
	MaxHeaderBytes      int           `mapstructure:"maxHeaderBytes"`
	MaxBodyBytes        int64         `mapstructure:"maxBodyBytes"`
	ShutdownGracePeriod time.Duration `mapstructure:"shutdownGracePeriod"`
}

// StateConfig locates the HPOS state document holding the admin public key
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls structured logging output
type LogConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	OutputPath string `mapstructure:"outputPath"` // file path or "stdout"
	Encoding   string `mapstructure:"encoding"`   // json or console
}

// MetricsConfig for the optional Prometheus metrics listener
type MetricsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Address        string        `mapstructure:"address"`
	Path           string        `mapstructure:"path"`
	UpdateInterval time.Duration `mapstructure:"updateInterval"`
}

// Load reads configuration from file and environment using Viper.
// An empty path falls back to the default search locations; environment
// variables alone are enough to run (HPOS_STATE_PATH is all that is required).
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hpos-admin-auth")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hpos-admin-auth")
	}

	// Environment variable support
	v.SetEnvPrefix("HPOS_ADMIN_AUTH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The state path predates this daemon's config file; keep honoring the
	// variable name the rest of the HPOS tooling exports.
	v.BindEnv("state.path", "HPOS_STATE_PATH", "HPOS_ADMIN_AUTH_STATE_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	setDefaults(&cfg)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ApplyOverrides applies command line overrides to the configuration
func (c *Config) ApplyOverrides(listenAddr, statePath, metricsAddr string) {
	if listenAddr != "" {
		c.Server.Address = listenAddr
	}
	if statePath != "" {
		c.State.Path = statePath
	}
	if metricsAddr != "" {
		c.Metrics.Enabled = true
		c.Metrics.Address = metricsAddr
	}
}

// setDefaults applies sensible defaults
func setDefaults(cfg *Config) {
	// Listen on loopback only; the proxy's auth_request subrequests are the
	// sole intended caller. Port 2884 is "auth" in phonespell.
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:2884"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20 // 1MB
	}
	if cfg.Server.ShutdownGracePeriod == 0 {
		cfg.Server.ShutdownGracePeriod = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.OutputPath == "" {
		cfg.Logging.OutputPath = "stdout"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "json"
	}

	// Metrics defaults
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":2112"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.UpdateInterval == 0 {
		cfg.Metrics.UpdateInterval = 15 * time.Second
	}
}

// validate ensures configuration is valid
func validate(cfg *Config) error {
	if cfg.State.Path == "" {
		return fmt.Errorf("state.path is required (set HPOS_STATE_PATH or state.path in config)")
	}

	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.encoding: %s", cfg.Logging.Encoding)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Address == "" {
			return fmt.Errorf("metrics.address is required when metrics are enabled")
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with '/': %s", cfg.Metrics.Path)
		}
		if cfg.Metrics.UpdateInterval <= 0 {
			return fmt.Errorf("metrics.updateInterval must be positive")
		}
	}

	return nil
}
