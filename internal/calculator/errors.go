package calculator

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is a domain-level failure: the inputs are individually valid
// but the computation cannot produce a result. It maps onto a single HTTP
// status and a plain detail message.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string { return e.Detail }

var (
	// ErrDivisionByZero is returned when the divisor is exactly zero.
	ErrDivisionByZero = &ServiceError{
		Status: http.StatusBadRequest,
		Detail: "Division by zero is not allowed",
	}

	// ErrOverflow is returned when a result's magnitude exceeds the
	// supported operand range.
	ErrOverflow = &ServiceError{
		Status: http.StatusBadRequest,
		Detail: "Calculation result exceeds supported range",
	}
)

// AsServiceError maps any evaluator failure onto a ServiceError. Unexpected
// errors are folded into a generic 400 so internals never leak to clients.
func AsServiceError(err error) *ServiceError {
	var svc *ServiceError
	if errors.As(err, &svc) {
		return svc
	}
	return &ServiceError{
		Status: http.StatusBadRequest,
		Detail: "An unexpected error occurred during calculation",
	}
}

// FieldError is a single validation diagnostic for one request field, shaped
// like the per-field entries clients already consume:
// {type, loc, msg, input, ctx}.
type FieldError struct {
	Type  string         `json:"type"`
	Loc   []string       `json:"loc"`
	Msg   string         `json:"msg"`
	Input any            `json:"input"`
	Ctx   map[string]any `json:"ctx,omitempty"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc[len(e.Loc)-1], e.Msg)
}
