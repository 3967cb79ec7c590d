package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	APITimeout     time.Duration `yaml:"timeout"`
	DatabasePath   string        `yaml:"database_path"`
	MigrateOnStart bool          `yaml:"migrate_on_start"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	MaxImportBytes int64         `yaml:"max_import_bytes"`
	Stats          StatsConfig   `yaml:"stats"`
}

type StatsConfig struct {
	// TopLocations is the default number of rows in a location ranking.
	TopLocations int `yaml:"top_locations"`
}

const (
	defaultMaxImportBytes = 10 << 20
	defaultTopLocations   = 10
	maxTopLocations       = 100
)

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("FLIGHTLOG_ADDR", ":8080"),
		APITimeout:     15 * time.Second,
		DatabasePath:   getEnv("FLIGHTLOG_DATABASE_PATH", "flightlog.db"),
		MigrateOnStart: getEnvBool("FLIGHTLOG_MIGRATE_ON_START", true),
		LogLevel:       getEnv("FLIGHTLOG_LOG_LEVEL", "info"),
		LogFormat:      getEnv("FLIGHTLOG_LOG_FORMAT", "json"),
		MaxImportBytes: defaultMaxImportBytes,
		Stats:          StatsConfig{TopLocations: defaultTopLocations},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate checks the loaded values and fills zero values that have a sane default.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("database_path is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.APITimeout))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unsupported log_format: %q", c.LogFormat))
	}

	if c.MaxImportBytes <= 0 {
		c.MaxImportBytes = defaultMaxImportBytes
	}
	if c.Stats.TopLocations <= 0 {
		c.Stats.TopLocations = defaultTopLocations
	}
	if c.Stats.TopLocations > maxTopLocations {
		errs = append(errs, fmt.Errorf("stats.top_locations must be at most %d", maxTopLocations))
	}

	return errors.Join(errs...)
}

// SlogLevel maps log_level onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log_level: %q", c.LogLevel)
}

// NewLogger builds the process logger described by log_level and log_format.
func (c *Config) NewLogger() (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
