package machine

import (
	"math"
	"slices"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
)

func evalUnary(op UnaryOp, x float64) (float64, error) {
	var (
		v   float64
		err error
	)
	switch op {
	case UnarySqrt:
		v, err = decimal.PreciseSqrt(x)
	case UnarySquare:
		v = decimal.PreciseSquare(x)
	case UnaryReciprocal:
		if x == 0 {
			return 0, calcerrors.NewDivisionByZero()
		}
		v = 1 / x
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, calcerrors.NewInvalidExpression("result out of range")
	}
	return v, nil
}

// applyUnary applies op to the entry and extends (or opens) the chain so the
// trace keeps wrapping the value that started it.
func applyUnary(s State, op UnaryOp) State {
	x, err := parseOperand(s.CurrentInput)
	if err != nil {
		return withEngineError(s, err)
	}
	result, err := evalUnary(op, x)
	if err != nil {
		return withEngineError(s, err)
	}

	chain := &UnaryChain{Prefix: s.Expression, Original: x}
	if s.Chain != nil {
		chain.Prefix = s.Chain.Prefix
		chain.Original = s.Chain.Original
		chain.Ops = slices.Clone(s.Chain.Ops)
	}
	chain.Ops = append(chain.Ops, op)

	display := decimal.FormatNumberForUnaryOp(result)
	shown, err := parseOperand(display)
	if err != nil {
		return withEngineError(s, err)
	}

	s.Chain = chain
	s.Expression = joinExpr(chain.Prefix, chain.Trace())
	s.CurrentInput = display
	s.LastResult = floatPtr(shown)
	s.AwaitingOperand = false
	return s
}
