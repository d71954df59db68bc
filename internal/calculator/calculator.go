package calculator

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/apd/v3"
)

// decCtx governs all arithmetic: 28 significant digits with ties rounded to
// even, the standard high-precision decimal context. Addition, subtraction
// and multiplication of in-range operands are exact at this precision;
// division rounds non-terminating expansions half-to-even.
var decCtx = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(28)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}()

// Add returns a + b exactly.
func Add(a, b *apd.Decimal) (*apd.Decimal, error) {
	var res apd.Decimal
	if _, err := decCtx.Add(&res, a, b); err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return checkRange(&res)
}

// Subtract returns a - b exactly.
func Subtract(a, b *apd.Decimal) (*apd.Decimal, error) {
	var res apd.Decimal
	if _, err := decCtx.Sub(&res, a, b); err != nil {
		return nil, fmt.Errorf("subtract: %w", err)
	}
	return checkRange(&res)
}

// Multiply returns a * b exactly.
func Multiply(a, b *apd.Decimal) (*apd.Decimal, error) {
	var res apd.Decimal
	if _, err := decCtx.Mul(&res, a, b); err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	return checkRange(&res)
}

// Divide returns a / b to 28 significant digits. A zero divisor is a domain
// error, detected only after both operands have passed range validation.
func Divide(a, b *apd.Decimal) (*apd.Decimal, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}

	var res apd.Decimal
	cond, err := decCtx.Quo(&res, a, b)
	if err != nil {
		return nil, fmt.Errorf("divide: %w", err)
	}
	if !cond.Inexact() {
		trimExactQuotient(&res, a.Exponent-b.Exponent)
	}
	return checkRange(&res)
}

// trimExactQuotient rewrites an exact quotient in its ideal-exponent form:
// trailing zeros are stripped, then restored only down to the ideal exponent
// exp(a)-exp(b) and only while the coefficient fits the context precision.
// Quo alone always returns a full precision-wide coefficient, so without this
// 10/4 would render as "2.500000000000000000000000000" instead of "2.5".
func trimExactQuotient(res *apd.Decimal, ideal int32) {
	res.Reduce(res)

	diff := int64(res.Exponent) - int64(ideal)
	if diff <= 0 {
		return
	}
	if room := int64(decCtx.Precision) - res.NumDigits(); diff > room {
		diff = room
	}
	if diff <= 0 {
		return
	}

	pow := new(apd.BigInt).Exp(apd.NewBigInt(10), apd.NewBigInt(diff), nil)
	res.Coeff.Mul(&res.Coeff, pow)
	res.Exponent -= int32(diff)
}

// Evaluate applies op to validated operands a and b. Each invocation is a
// single pure transformation over immutable inputs.
func Evaluate(op Operation, a, b *apd.Decimal) (*apd.Decimal, error) {
	switch op {
	case OperationAdd:
		return Add(a, b)
	case OperationSubtract:
		return Subtract(a, b)
	case OperationMultiply:
		return Multiply(a, b)
	case OperationDivide:
		return Divide(a, b)
	}
	return nil, &ServiceError{
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("Unsupported operation: %s", op),
	}
}

// checkRange rejects results whose magnitude exceeds the operand bound.
// Results exactly at the bound are valid.
func checkRange(res *apd.Decimal) (*apd.Decimal, error) {
	if res.Cmp(maxOperand) > 0 || res.Cmp(minOperand) < 0 {
		return nil, ErrOverflow
	}
	return res, nil
}
