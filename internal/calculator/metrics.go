package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// instruments are the calculator's OTel metrics. They are created against
// the global meter provider, so they report to whichever provider main
// installs.
type instruments struct {
	actions  metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	result   metric.Float64Gauge
}

func newInstruments() (*instruments, error) {
	meter := otel.Meter("calculator")
	m := &instruments{}

	var err error

	m.actions, err = meter.Int64Counter("calculator.actions.total",
		metric.WithDescription("Total number of calculator actions and evaluations applied"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating actions counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram("calculator.action.duration",
		metric.WithDescription("Duration of calculator actions in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("creating action histogram: %w", err)
	}

	m.errors, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors, including latched display errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	m.result, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The most recent computed result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	return m, nil
}
