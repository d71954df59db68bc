package calculator

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Operand bounds, inclusive: -1e10 <= value <= 1e10. Zero exponents keep
// String() rendering the bounds in plain notation for diagnostics.
var (
	maxOperand = apd.New(10_000_000_000, 0)
	minOperand = apd.New(-10_000_000_000, 0)
)

const operationChoices = "'add', 'subtract', 'multiply' or 'divide'"

// rawCalculationBody defers field decoding so every field can be validated
// independently and all diagnostics collected into one response.
type rawCalculationBody struct {
	Operation json.RawMessage `json:"operation"`
	A         json.RawMessage `json:"a"`
	B         json.RawMessage `json:"b"`
}

// ValidateRequest decodes and validates a /calculate request body. On
// failure it returns the full list of per-field diagnostics; evaluation must
// never be attempted when any diagnostic is present.
func ValidateRequest(body []byte) (*CalculationRequest, []FieldError) {
	var raw rawCalculationBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, []FieldError{{
			Type: "json_invalid",
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("Invalid JSON: %v", err),
		}}
	}

	var fields []FieldError

	op, fe := ParseOperation(raw.Operation)
	if fe != nil {
		fields = append(fields, *fe)
	}

	a, fe := ParseOperand("a", raw.A)
	if fe != nil {
		fields = append(fields, *fe)
	}

	b, fe := ParseOperand("b", raw.B)
	if fe != nil {
		fields = append(fields, *fe)
	}

	if len(fields) > 0 {
		return nil, fields
	}

	return &CalculationRequest{Operation: op, A: a, B: b}, nil
}

// ParseOperation validates the operation tag against the fixed enumeration.
func ParseOperation(raw json.RawMessage) (Operation, *FieldError) {
	if isAbsent(raw) {
		return "", missingField("operation")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", operationEnumError(json.RawMessage(raw))
	}

	op := Operation(s)
	switch op {
	case OperationAdd, OperationSubtract, OperationMultiply, OperationDivide:
		return op, nil
	}
	return "", operationEnumError(s)
}

// ParseOperand converts a raw JSON operand (decimal string or number
// literal) into a validated exact decimal. It is a pure function of its
// input: no state, no side effects.
func ParseOperand(field string, raw json.RawMessage) (*apd.Decimal, *FieldError) {
	if isAbsent(raw) {
		return nil, missingField(field)
	}

	// The operand may arrive as "1.25" or 1.25; both decode to the same
	// decimal literal. Anything else (bool, object, array) is malformed.
	literal := ""
	var input any
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, malformedOperand(field, json.RawMessage(raw))
		}
		literal, input = s, s
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, malformedOperand(field, json.RawMessage(raw))
		}
		literal, input = n.String(), n
	}

	d, _, err := apd.NewFromString(literal)
	if err != nil || d.Form != apd.Finite {
		return nil, malformedOperand(field, input)
	}

	if d.Cmp(maxOperand) > 0 {
		return nil, &FieldError{
			Type:  "less_than_equal",
			Loc:   []string{"body", field},
			Msg:   fmt.Sprintf("Input should be less than or equal to %s", maxOperand),
			Input: input,
			Ctx:   map[string]any{"le": json.Number(maxOperand.String())},
		}
	}
	if d.Cmp(minOperand) < 0 {
		return nil, &FieldError{
			Type:  "greater_than_equal",
			Loc:   []string{"body", field},
			Msg:   fmt.Sprintf("Input should be greater than or equal to %s", minOperand),
			Input: input,
			Ctx:   map[string]any{"ge": json.Number(minOperand.String())},
		}
	}

	return d, nil
}

// isAbsent treats a missing key and an explicit null the same way.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func missingField(field string) *FieldError {
	return &FieldError{
		Type: "missing",
		Loc:  []string{"body", field},
		Msg:  "Field required",
	}
}

func malformedOperand(field string, input any) *FieldError {
	return &FieldError{
		Type:  "decimal_parsing",
		Loc:   []string{"body", field},
		Msg:   "Input should be a valid decimal",
		Input: input,
	}
}

func operationEnumError(input any) *FieldError {
	return &FieldError{
		Type:  "enum",
		Loc:   []string{"body", "operation"},
		Msg:   fmt.Sprintf("Input should be %s", operationChoices),
		Input: input,
		Ctx:   map[string]any{"expected": operationChoices},
	}
}
