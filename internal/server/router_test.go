package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

func newTestRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	observability.Logger = zap.NewNop()

	reg := prometheus.NewRegistry()
	store, err := session.NewStore(session.Options{Registerer: reg})
	if err != nil {
		t.Fatalf("creating session store: %v", err)
	}
	h, err := calculator.NewHandler(store, nil)
	if err != nil {
		t.Fatalf("creating calculator handler: %v", err)
	}
	return NewRouter(h, reg), reg
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterEvaluateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router, _ := newTestRouter(t)

	body := []byte(`{"expression":"2 + 3 × 4"}`)
	req := httptest.NewRequest(http.MethodPost, "/calculator/evaluate", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["result"].(float64); !ok || got != 14 {
		t.Fatalf("expected result 14, got %#v", payload["result"])
	}
}

func TestNewRouterMetricsExposeSessionGauge(t *testing.T) {
	router, _ := newTestRouter(t)

	create := httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil)
	cw := httptest.NewRecorder()
	router.ServeHTTP(cw, create)
	if cw.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, cw.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "calculator_sessions_active 1") {
		t.Fatalf("expected session gauge in metrics output, got:\n%s", w.Body.String())
	}
}
