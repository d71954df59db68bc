package calculator

import "github.com/cockroachdb/apd/v3"

// Operation enumerates the supported arithmetic operations.
type Operation string

const (
	OperationAdd      Operation = "add"
	OperationSubtract Operation = "subtract"
	OperationMultiply Operation = "multiply"
	OperationDivide   Operation = "divide"
)

// CalculationRequest is a fully validated /calculate request. Both operands
// have passed range validation before evaluation is attempted.
type CalculationRequest struct {
	Operation Operation
	A         *apd.Decimal
	B         *apd.Decimal
}

// CalculationResponse is the JSON body for a successful calculation.
// Decimal values travel as exact strings so no precision is lost in transit.
type CalculationResponse struct {
	Result    string    `json:"result"`
	Operation Operation `json:"operation"`
	Operands  []string  `json:"operands"`
}

// ErrorResponse is the JSON body for domain errors (division by zero,
// result overflow, unsupported operation).
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse is the JSON body for request validation failures:
// one diagnostic per offending field, all collected into a single response.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
