// Package config loads runtime settings for the calculator service.
//
// Sources are applied in order, later ones winning: built-in defaults, the
// YAML file named by CALC_CONFIG, a .env file, then the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Addr            string        `yaml:"addr"`
	ServiceName     string        `yaml:"service_name"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Telemetry       Telemetry     `yaml:"telemetry"`
	Sessions        Sessions      `yaml:"sessions"`
	Limits          Limits        `yaml:"limits"`
}

// Telemetry toggles the OTLP exporters. Prometheus scraping is always on.
type Telemetry struct {
	Tracing bool `yaml:"tracing"`
	Metrics bool `yaml:"metrics"`
	Logs    bool `yaml:"logs"`
}

type Sessions struct {
	MaxSessions int           `yaml:"max_sessions"`
	IdleTTL     time.Duration `yaml:"idle_ttl"`
}

// Limits bound each calculator's history and memory; 0 means unbounded.
type Limits struct {
	MaxHistory int `yaml:"max_history"`
	MaxMemory  int `yaml:"max_memory"`
}

const (
	DefaultAddr        = ":8080"
	DefaultServiceName = "go-chi-calculator"
)

func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		ServiceName:     DefaultServiceName,
		ShutdownTimeout: 5 * time.Second,
		Telemetry: Telemetry{
			Tracing: true,
			Metrics: true,
		},
		Sessions: Sessions{
			MaxSessions: 1000,
			IdleTTL:     30 * time.Minute,
		},
		Limits: Limits{
			MaxHistory: 100,
			MaxMemory:  50,
		},
	}
}

// Load builds the configuration from every source.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	if c.Sessions.MaxSessions < 0 {
		errs = append(errs, errors.New("sessions.max_sessions must not be negative"))
	}
	if c.Sessions.IdleTTL < 0 {
		errs = append(errs, errors.New("sessions.idle_ttl must not be negative"))
	}
	if c.Limits.MaxHistory < 0 {
		errs = append(errs, errors.New("limits.max_history must not be negative"))
	}
	if c.Limits.MaxMemory < 0 {
		errs = append(errs, errors.New("limits.max_memory must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
