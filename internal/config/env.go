package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvConfigFile      = "CALC_CONFIG"
	EnvAddr            = "CALC_ADDR"
	EnvServiceName     = "OTEL_SERVICE_NAME"
	EnvTracing         = "CALC_TRACING"
	EnvMetrics         = "CALC_METRICS"
	EnvLogs            = "CALC_OTLP_LOGS"
	EnvMaxSessions     = "CALC_MAX_SESSIONS"
	EnvSessionTTL      = "CALC_SESSION_TTL"
	EnvMaxHistory      = "CALC_MAX_HISTORY"
	EnvMaxMemory       = "CALC_MAX_MEMORY"
	EnvShutdownTimeout = "CALC_SHUTDOWN_TIMEOUT"
)

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvServiceName); ok && v != "" {
		c.ServiceName = v
	}

	for _, b := range []struct {
		key string
		dst *bool
	}{
		{EnvTracing, &c.Telemetry.Tracing},
		{EnvMetrics, &c.Telemetry.Metrics},
		{EnvLogs, &c.Telemetry.Logs},
	} {
		if err := envBool(lookup, b.key, b.dst); err != nil {
			return err
		}
	}

	for _, n := range []struct {
		key string
		dst *int
	}{
		{EnvMaxSessions, &c.Sessions.MaxSessions},
		{EnvMaxHistory, &c.Limits.MaxHistory},
		{EnvMaxMemory, &c.Limits.MaxMemory},
	} {
		if err := envInt(lookup, n.key, n.dst); err != nil {
			return err
		}
	}

	if err := envDuration(lookup, EnvSessionTTL, &c.Sessions.IdleTTL); err != nil {
		return err
	}
	return envDuration(lookup, EnvShutdownTimeout, &c.ShutdownTimeout)
}

func envBool(lookup lookupFunc, key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func envInt(lookup lookupFunc, key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(lookup lookupFunc, key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
