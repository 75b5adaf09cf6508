// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "BOT_PANEL"

type Config struct {
	BaseURL          string `mapstructure:"base_url"`
	PollIntervalMs   int    `mapstructure:"poll_interval_ms"`
	RequestTimeoutMs int    `mapstructure:"request_timeout_ms"`
	DefaultSymbol    string `mapstructure:"default_symbol"`
	DefaultMode      string `mapstructure:"default_mode"`
	DefaultInterval  string `mapstructure:"default_interval"`
	DebugLogging     bool   `mapstructure:"debug_logging"`
	LogFile          string `mapstructure:"log_file"`
	LogTail          int    `mapstructure:"log_tail"`
	// LogMaxSizeMB of 0 disables rotation.
	LogMaxSizeMB  int `mapstructure:"log_max_size_mb"`
	LogMaxBackups int `mapstructure:"log_max_backups"`
	// MetricsAddr serves Prometheus metrics when set, e.g. "127.0.0.1:9464".
	MetricsAddr string `mapstructure:"metrics_addr"`
}

const (
	DefaultBaseURL          = "http://localhost:8080"
	DefaultPollIntervalMs   = 5000
	DefaultRequestTimeoutMs = 10000
	DefaultSymbol           = "BTCUSDT"
	DefaultMode             = "BACKTEST"
	DefaultInterval         = "1m"
	DefaultLogFile          = "logs/panel.log"
	DefaultLogTail          = 200
	DefaultLogMaxSizeMB     = 10
	DefaultLogMaxBackups    = 3
)

// PollInterval returns the periodic refresh cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := map[string]interface{}{
		"base_url":           DefaultBaseURL,
		"poll_interval_ms":   DefaultPollIntervalMs,
		"request_timeout_ms": DefaultRequestTimeoutMs,
		"default_symbol":     DefaultSymbol,
		"default_mode":       DefaultMode,
		"default_interval":   DefaultInterval,
		"debug_logging":      false,
		"log_file":           DefaultLogFile,
		"log_tail":           DefaultLogTail,
		"log_max_size_mb":    DefaultLogMaxSizeMB,
		"log_max_backups":    DefaultLogMaxBackups,
		"metrics_addr":       "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads path (JSON, YAML or TOML by extension), applies a .env
// file when present and BOT_PANEL_* environment overrides, then validates.
// A missing file is not an error: defaults and environment apply.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.DefaultSymbol = strings.TrimSpace(cfg.DefaultSymbol)
	cfg.MetricsAddr = strings.TrimSpace(cfg.MetricsAddr)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Host == "" {
		return errors.New("invalid base_url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("base_url must use http or https")
	}
	if cfg.PollIntervalMs <= 0 {
		return errors.New("invalid poll_interval_ms")
	}
	if cfg.RequestTimeoutMs <= 0 {
		return errors.New("invalid request_timeout_ms")
	}
	if cfg.LogTail < 0 {
		return errors.New("invalid log_tail")
	}
	if cfg.LogMaxSizeMB < 0 || cfg.LogMaxBackups < 0 {
		return errors.New("invalid log rotation settings")
	}
	return nil
}
