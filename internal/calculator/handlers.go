package calculator

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"arithmetic-service/internal/handlers"
	"arithmetic-service/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// HandleCalculate handles POST /calculate: decode, validate every field,
// evaluate, and map outcomes to HTTP statuses. Validation failures are 422
// with a diagnostic per field; domain failures (division by zero, overflow)
// are 400 with a plain detail message.
func HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "reading request body", err,
			http.StatusBadRequest, ErrorResponse{Detail: "could not read request body"}, w)
		return
	}

	req, fieldErrs := ValidateRequest(body)
	if fieldErrs != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "request validation failed",
			fmt.Errorf("%d invalid fields", len(fieldErrs)),
			http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: fieldErrs}, w)
		return
	}

	opName := string(req.Operation)

	// Record operands as span attributes; decimals travel as strings.
	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.String("calculator.operand.a", req.A.String()),
		attribute.String("calculator.operand.b", req.B.String()),
	)

	start := time.Now()
	result, err := Evaluate(req.Operation, req.A, req.B)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		svcErr := AsServiceError(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, svcErr.Detail, err,
			svcErr.Status, ErrorResponse{Detail: svcErr.Detail}, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	if approx, err := result.Float64(); err == nil {
		// Gauge telemetry only; the exact value stays in the response.
		resultGauge.Record(ctx, approx, attrs)
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", opName),
		zap.String("a", req.A.String()),
		zap.String("b", req.B.String()),
		zap.String("result", result.String()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalculationResponse{
		Result:    result.String(),
		Operation: req.Operation,
		Operands:  []string{req.A.String(), req.B.String()},
	})
}
