package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestRecordErrorWritesProvidedBody(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	span := trace.SpanFromContext(ctx)
	logger := zap.NewNop()

	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	w := httptest.NewRecorder()

	RecordError(
		ctx,
		span,
		logger,
		counter,
		"divide",
		"division by zero",
		errors.New("division by zero"),
		http.StatusBadRequest,
		map[string]string{"detail": "Division by zero is not allowed"},
		w,
	)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if got := body["detail"]; got != "Division by zero is not allowed" {
		t.Fatalf("expected detail %q, got %q", "Division by zero is not allowed", got)
	}

	if _, ok := body["request_id"]; ok {
		t.Fatal("did not expect request_id field in JSON body")
	}
}

func TestRecordErrorWritesListBody(t *testing.T) {
	ctx := context.Background()
	span := trace.SpanFromContext(ctx)
	logger := zap.NewNop()

	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	w := httptest.NewRecorder()

	diagnostics := map[string]any{
		"detail": []map[string]any{
			{"type": "missing", "loc": []string{"body", "a"}, "msg": "Field required"},
		},
	}

	RecordError(ctx, span, logger, counter, "calculate", "request validation failed",
		errors.New("1 invalid field"), http.StatusUnprocessableEntity, diagnostics, w)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}

	var body struct {
		Detail []map[string]any `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if len(body.Detail) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(body.Detail))
	}
	if got := body.Detail[0]["type"]; got != "missing" {
		t.Fatalf("expected type missing, got %#v", got)
	}
}
