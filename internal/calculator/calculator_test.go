package calculator

import (
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}

func evaluate(t *testing.T, op Operation, a, b string) *apd.Decimal {
	t.Helper()
	res, err := Evaluate(op, mustDecimal(t, a), mustDecimal(t, b))
	if err != nil {
		t.Fatalf("%s(%s, %s): unexpected error: %v", op, a, b, err)
	}
	return res
}

func TestEvaluateExactResults(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b string
		want string
	}{
		{OperationAdd, "10", "5", "15"},
		{OperationAdd, "-10", "5", "-5"},
		{OperationAdd, "1.25", "2.75", "4.00"},
		{OperationAdd, "0.1", "0.2", "0.3"},
		{OperationAdd, "123.456", "789.012", "912.468"},
		{OperationAdd, "0", "0", "0"},
		{OperationSubtract, "10", "5", "5"},
		{OperationSubtract, "-10", "5", "-15"},
		{OperationSubtract, "789.012", "123.456", "665.556"},
		{OperationSubtract, "1.0", "0.9", "0.1"},
		{OperationMultiply, "10", "5", "50"},
		{OperationMultiply, "-10", "5", "-50"},
		{OperationMultiply, "1.5", "2.5", "3.75"},
		{OperationMultiply, "0.1", "0.1", "0.01"},
		{OperationMultiply, "12.34", "5.67", "69.9678"},
		{OperationDivide, "10", "5", "2"},
		{OperationDivide, "10", "4", "2.5"},
		{OperationDivide, "7.5", "2.5", "3"},
		{OperationDivide, "-10", "5", "-2"},
		{OperationDivide, "0", "100", "0"},
	}

	for _, tc := range tests {
		t.Run(string(tc.op)+"/"+tc.a+"_"+tc.b, func(t *testing.T) {
			got := evaluate(t, tc.op, tc.a, tc.b)
			if got.String() != tc.want {
				t.Fatalf("%s(%s, %s): expected %q, got %q", tc.op, tc.a, tc.b, tc.want, got.String())
			}
		})
	}
}

func TestDivideHighPrecision(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		// Non-terminating expansions are rounded half-to-even at 28
		// significant digits.
		{"1", "3", "0.3333333333333333333333333333"},
		{"22", "7", "3.142857142857142857142857143"},
		{"2", "3", "0.6666666666666666666666666667"},
	}

	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got := evaluate(t, OperationDivide, tc.a, tc.b)
			if got.String() != tc.want {
				t.Fatalf("divide(%s, %s): expected %q, got %q", tc.a, tc.b, tc.want, got.String())
			}
		})
	}
}

func TestDivideExactQuotientForm(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		// Exact quotients carry the ideal exponent exp(a)-exp(b): trailing
		// zeros are trimmed, not padded out to the working precision.
		{"10", "4", "2.5"},
		{"10", "5", "2"},
		{"4.00", "2", "2.00"},
		{"7.5", "2.5", "3"},
		{"2.5", "0.5", "5"},
		{"-10", "5", "-2"},
		{"0.00", "2", "0.00"},
		{"10000000000", "1", "10000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got := evaluate(t, OperationDivide, tc.a, tc.b)
			if got.String() != tc.want {
				t.Fatalf("divide(%s, %s): expected %q, got %q", tc.a, tc.b, tc.want, got.String())
			}
		})
	}
}

func TestEvaluateCommutativity(t *testing.T) {
	pairs := [][2]string{
		{"1.25", "2.75"},
		{"-10", "5"},
		{"0.001", "999.999"},
		{"0", "42.42"},
	}

	for _, op := range []Operation{OperationAdd, OperationMultiply} {
		for _, p := range pairs {
			ab := evaluate(t, op, p[0], p[1])
			ba := evaluate(t, op, p[1], p[0])
			if ab.String() != ba.String() {
				t.Fatalf("%s not commutative for (%s, %s): %q vs %q", op, p[0], p[1], ab.String(), ba.String())
			}
		}
	}
}

func TestDivideByZero(t *testing.T) {
	for _, a := range []string{"1", "-10", "0", "5"} {
		for _, b := range []string{"0", "0.0"} {
			_, err := Divide(mustDecimal(t, a), mustDecimal(t, b))
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("divide(%s, %s): expected ErrDivisionByZero, got %v", a, b, err)
			}
		}
	}
}

func TestDivideByZeroDetail(t *testing.T) {
	_, err := Divide(mustDecimal(t, "5"), mustDecimal(t, "0"))

	var svc *ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svc.Detail != "Division by zero is not allowed" {
		t.Fatalf("expected division-by-zero detail, got %q", svc.Detail)
	}
	if svc.Status != 400 {
		t.Fatalf("expected status 400, got %d", svc.Status)
	}
}

func TestEvaluateOverflow(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b string
	}{
		{OperationAdd, "10000000000", "1"},
		{OperationAdd, "-10000000000", "-1"},
		{OperationSubtract, "10000000000", "-1"},
		{OperationSubtract, "-10000000000", "1"},
		{OperationMultiply, "10000000000", "2"},
		{OperationMultiply, "10000000000", "-1.1"},
		{OperationDivide, "10000000000", "0.5"},
		{OperationDivide, "10000000000", "-0.1"},
	}

	for _, tc := range tests {
		t.Run(string(tc.op)+"/"+tc.a+"_"+tc.b, func(t *testing.T) {
			_, err := Evaluate(tc.op, mustDecimal(t, tc.a), mustDecimal(t, tc.b))
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("%s(%s, %s): expected ErrOverflow, got %v", tc.op, tc.a, tc.b, err)
			}
		})
	}
}

func TestEvaluateAtBoundary(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b string
		want string
	}{
		{OperationAdd, "10000000000", "0", "10000000000"},
		{OperationAdd, "-10000000000", "0", "-10000000000"},
		{OperationAdd, "9999999999", "1", "10000000000"},
		{OperationMultiply, "10000000000", "1", "10000000000"},
		{OperationMultiply, "10000000000", "-1", "-10000000000"},
		{OperationDivide, "10000000000", "1", "10000000000"},
		{OperationDivide, "10000000000", "-1", "-10000000000"},
	}

	for _, tc := range tests {
		got := evaluate(t, tc.op, tc.a, tc.b)
		if got.String() != tc.want {
			t.Fatalf("%s(%s, %s): expected %q, got %q", tc.op, tc.a, tc.b, tc.want, got.String())
		}
	}
}

func TestEvaluateUnknownOperation(t *testing.T) {
	_, err := Evaluate(Operation("modulo"), mustDecimal(t, "1"), mustDecimal(t, "2"))

	var svc *ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svc.Detail != "Unsupported operation: modulo" {
		t.Fatalf("unexpected detail %q", svc.Detail)
	}
}

func TestEvaluateIdempotence(t *testing.T) {
	for _, op := range []Operation{OperationAdd, OperationSubtract, OperationMultiply, OperationDivide} {
		first := evaluate(t, op, "123.456", "7.89")
		second := evaluate(t, op, "123.456", "7.89")
		if first.String() != second.String() {
			t.Fatalf("%s not idempotent: %q vs %q", op, first.String(), second.String())
		}
	}
}

func TestEvaluateDoesNotMutateOperands(t *testing.T) {
	a := mustDecimal(t, "1.25")
	b := mustDecimal(t, "2.75")

	if _, err := Add(a, b); err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.String() != "1.25" || b.String() != "2.75" {
		t.Fatalf("operands mutated: a=%q b=%q", a.String(), b.String())
	}
}
