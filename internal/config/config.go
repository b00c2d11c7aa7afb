// Package config loads the server configuration from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
)

type Config struct {
	Server  ServerConfig       `yaml:"server"`
	Limiter ratelimiter.Config `yaml:"limiter"`
	Log     LogConfig          `yaml:"log"`
	Report  ReportConfig       `yaml:"report"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type ReportConfig struct {
	// Interval between stats log lines. Zero disables the report.
	Interval time.Duration `yaml:"interval"`
}

// Default is a leaky bucket of capacity 5
// leaking one request per second.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Limiter: ratelimiter.Config{
			Type:   ratelimiter.LeakyBucketLimiterType,
			Limit:  5,
			Window: 10 * time.Second,
			Rate:   1,
		},
		Log:    LogConfig{Level: "info"},
		Report: ReportConfig{Interval: time.Minute},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with environment variables.
func Load(path string) (Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := getEnv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getEnv("RATE_LIMIT_ALGORITHM"); v != "" {
		t, err := ratelimiter.ParseType(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ALGORITHM: %w", err)
		}
		cfg.Limiter.Type = t
	}
	if v := getEnv("RATE_LIMIT_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_LIMIT: %w", err)
		}
		cfg.Limiter.Limit = limit
	}
	if v := getEnv("RATE_LIMIT_WINDOW"); v != "" {
		window, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
		cfg.Limiter.Window = window
	}
	if v := getEnv("RATE_LIMIT_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RATE: %w", err)
		}
		cfg.Limiter.Rate = rate
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getEnv("REPORT_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REPORT_INTERVAL: %w", err)
		}
		cfg.Report.Interval = interval
	}
	return nil
}

// Validate checks the settings that are not checked by the limiter
// constructors themselves. A non-finite rate is rejected here too so the error
// names the config key.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if math.IsInf(c.Limiter.Rate, 0) || math.IsNaN(c.Limiter.Rate) {
		errs = append(errs, fmt.Errorf("limiter.rate must be finite, got %v", c.Limiter.Rate))
	}
	if c.Report.Interval < 0 {
		errs = append(errs, errors.New("report.interval must not be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
