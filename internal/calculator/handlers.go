package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
	"go-chi-calculator/internal/expression"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/machine"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints.
type Handler struct {
	store   *session.Store
	reducer *machine.Reducer
	metrics *instruments
}

// NewHandler wires a handler to its session store. reducer may be nil, in
// which case a zero Reducer is used.
func NewHandler(store *session.Store, reducer *machine.Reducer) (*Handler, error) {
	if reducer == nil {
		reducer = &machine.Reducer{}
	}
	m, err := newInstruments()
	if err != nil {
		return nil, err
	}
	return &Handler{store: store, reducer: reducer, metrics: m}, nil
}

// elapsedMillis reports time since start in fractional milliseconds.
func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// engineStatus maps an engine error onto an HTTP status: bad arithmetic is
// a well-formed request that cannot be processed.
func engineStatus(err error) int {
	if calcerrors.KindOf(err) == "" {
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

// Evaluate handles POST /calculator/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.expression", req.Expression))

	start := time.Now()
	result, err := expression.Evaluate(req.Expression)
	elapsed := elapsedMillis(start)

	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "evaluate", calcerrors.UserMessage(err), err, engineStatus(err), w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", "evaluate"))
	h.metrics.actions.Add(ctx, 1, attrs)
	h.metrics.duration.Record(ctx, elapsed, attrs)
	h.metrics.result.Record(ctx, result, attrs)

	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("expression", req.Expression),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Expression: req.Expression,
		Result:     result,
		Display:    decimal.FormatValue(result),
	})
}

// Percent handles POST /calculator/percent.
func (h *Handler) Percent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.percent",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req PercentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "percent", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	raw, err := expression.CalculatePercent(req.Expression, req.Entry)
	elapsed := elapsedMillis(start)
	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "percent", calcerrors.UserMessage(err), err, engineStatus(err), w)
		return
	}
	result := decimal.FormatResult(raw)

	attrs := metric.WithAttributes(attribute.String("operation", "percent"))
	h.metrics.actions.Add(ctx, 1, attrs)
	h.metrics.duration.Record(ctx, elapsed, attrs)
	h.metrics.result.Record(ctx, result, attrs)
	span.SetStatus(codes.Ok, "")

	logger.Info("percent resolved",
		zap.String("expression", req.Expression),
		zap.String("entry", req.Entry),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, PercentResponse{
		Result:  result,
		Display: decimal.FormatValue(result),
	})
}

// recordDispatch records metrics, a span event and a log line for one
// reducer step.
func (h *Handler) recordDispatch(ctx context.Context, span trace.Span, logger *zap.Logger, sessionID string, a machine.Action, before, after machine.State, elapsed float64) {
	attrs := metric.WithAttributes(attribute.String("operation", string(a.Type)))

	h.metrics.actions.Add(ctx, 1, attrs)
	h.metrics.duration.Record(ctx, elapsed, attrs)
	if after.LastResult != nil && after.LastResult != before.LastResult {
		h.metrics.result.Record(ctx, *after.LastResult, attrs)
	}

	latched := after.HasError() && !before.HasError()
	if latched {
		h.metrics.errors.Add(ctx, 1, attrs)
		span.AddEvent("calculator.error", trace.WithAttributes(attribute.String("error", after.Error)))
	}

	span.AddEvent("action.applied", trace.WithAttributes(
		attribute.String("action", string(a.Type)),
		attribute.String("current_input", after.CurrentInput),
		attribute.String("expression", after.Expression),
	))

	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("action", string(a.Type)),
		zap.String("current_input", after.CurrentInput),
		zap.String("expression", after.Expression),
		zap.Float64("duration_ms", elapsed),
	}
	if latched {
		fields = append(fields, zap.String("error", after.Error))
	}
	logger.Info("calculator action applied", fields...)
}

func actionName(a machine.Action) string {
	switch a.Type {
	case machine.ActionInputDigit:
		return fmt.Sprintf("%s.%s", a.Type, a.Digit)
	case machine.ActionOperator:
		return fmt.Sprintf("%s.%s", a.Type, a.Operator)
	}
	return string(a.Type)
}
