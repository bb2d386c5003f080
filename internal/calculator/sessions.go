package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/machine"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

func sessionResponse(s session.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		View:      machine.View(s.State),
		State:     s.State,
	}
}

// lookupStatus maps store errors to HTTP statuses.
func lookupStatus(err error) (int, string) {
	if errors.Is(err, session.ErrNotFound) {
		return http.StatusNotFound, "session not found"
	}
	return http.StatusInternalServerError, "session store failure"
}

// CreateSession handles POST /calculator/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	_, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	s := h.store.Create()
	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", s.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, sessionResponse(s))
}

// GetSession handles GET /calculator/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	s, err := h.store.Get(id)
	if err != nil {
		status, msg := lookupStatus(err)
		observability.RecordError(ctx, span, logger, h.metrics.errors, "session.get", msg, err, status, w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, sessionResponse(s))
}

// DeleteSession handles DELETE /calculator/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		status, msg := lookupStatus(err)
		observability.RecordError(ctx, span, logger, h.metrics.errors, "session.delete", msg, err, status, w)
		return
	}

	logger.Info("calculator session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ApplyAction handles POST /calculator/sessions/{id}/actions. The body is a
// single action; the response is the resulting view.
func (h *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.action",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var a machine.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "action", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if err := a.Validate(); err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "action", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.action", string(a.Type)))

	s, err := h.store.Update(id, func(before machine.State) machine.State {
		start := time.Now()
		after := h.reducer.Reduce(before, a)
		h.recordDispatch(ctx, span, logger, id, a, before, after, elapsedMillis(start))
		return after
	})
	if err != nil {
		status, msg := lookupStatus(err)
		observability.RecordError(ctx, span, logger, h.metrics.errors, "action", msg, err, status, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, sessionResponse(s))
}

// ApplyKeys handles POST /calculator/sessions/{id}/keys. Every action the
// key sequence expands to runs in its own child span, and the response
// carries the readout after each one.
func (h *Handler) ApplyKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	actions, err := keymap.Parse(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	if len(actions) == 0 {
		observability.RecordError(ctx, span, logger, h.metrics.errors, "keys", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Int("keys.actions_count", len(actions)))

	steps := make([]KeyStep, 0, len(actions))
	s, err := h.store.Update(id, func(st machine.State) machine.State {
		for i, a := range actions {
			stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.keys.step.%d.%s", i, actionName(a)),
				trace.WithAttributes(
					attribute.Int("keys.step.index", i),
					attribute.String("keys.step.action", string(a.Type)),
					attribute.String("keys.step.input", st.CurrentInput),
				),
			)

			start := time.Now()
			next := h.reducer.Reduce(st, a)
			h.recordDispatch(stepCtx, stepSpan, logger, id, a, st, next, elapsedMillis(start))

			if next.HasError() {
				stepSpan.SetStatus(codes.Error, next.Error)
			} else {
				stepSpan.SetStatus(codes.Ok, "")
			}
			stepSpan.End()

			st = next
			view := machine.View(st)
			steps = append(steps, KeyStep{
				Action:     a.Type,
				Display:    view.Display,
				Expression: view.Expression,
			})
		}
		return st
	})
	if err != nil {
		status, msg := lookupStatus(err)
		observability.RecordError(ctx, span, logger, h.metrics.errors, "keys", msg, err, status, w)
		return
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", machine.View(s.State).Display),
		attribute.Int("total_steps", len(steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key sequence applied",
		zap.String("session_id", id),
		zap.Int("steps", len(steps)),
		zap.String("request_id", requestID),
	)

	resp := sessionResponse(s)
	resp.Steps = steps
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// History handles GET /calculator/sessions/{id}/history?order=newest|oldest.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.history")
	defer span.End()

	order, s, ok := h.panelRequest(ctx, w, r, span, logger, "history")
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		Order:   order,
		Entries: machine.SortHistory(s.State.History, order),
	})
}

// Memory handles GET /calculator/sessions/{id}/memory?order=newest|oldest.
func (h *Handler) Memory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.memory")
	defer span.End()

	order, s, ok := h.panelRequest(ctx, w, r, span, logger, "memory")
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, MemoryResponse{
		Order:   order,
		Entries: machine.SortMemory(s.State.Memory, order),
	})
}

// panelRequest parses the sort order and loads the session for the side
// panel endpoints, writing the error response itself on failure.
func (h *Handler) panelRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, op string) (machine.SortOrder, session.Session, bool) {
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	order, err := machine.ParseSortOrder(r.URL.Query().Get("order"))
	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.errors, op, err.Error(), err, http.StatusBadRequest, w)
		return "", session.Session{}, false
	}

	s, err := h.store.Get(id)
	if err != nil {
		status, msg := lookupStatus(err)
		observability.RecordError(ctx, span, logger, h.metrics.errors, op, msg, err, status, w)
		return "", session.Session{}, false
	}
	return order, s, true
}
