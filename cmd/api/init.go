package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/machine"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTLP exporters enabled in cfg and returns one
// function that flushes and stops all of them.
func initTelemetry(ctx context.Context, cfg config.Config) (shutdownFunc, error) {
	var shutdowns []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		enabled bool
		init    func(context.Context, string) (func(context.Context) error, error)
	}{
		{cfg.Telemetry.Tracing, observability.InitTracing},
		{cfg.Telemetry.Metrics, observability.InitMetrics},
		{cfg.Telemetry.Logs, observability.InitLogging},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		stop, err := step.init(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, stop)
	}

	return shutdown, nil
}

// initCalculator builds the session store and the calculator handler.
func initCalculator(cfg config.Config, reg prometheus.Registerer) (*session.Store, *calculator.Handler, error) {
	store, err := session.NewStore(session.Options{
		MaxSessions: cfg.Sessions.MaxSessions,
		IdleTTL:     cfg.Sessions.IdleTTL,
		Registerer:  reg,
	})
	if err != nil {
		return nil, nil, err
	}

	h, err := calculator.NewHandler(store, &machine.Reducer{
		MaxHistory: cfg.Limits.MaxHistory,
		MaxMemory:  cfg.Limits.MaxMemory,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, h, nil
}
