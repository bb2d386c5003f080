package expression

import (
	"fmt"
	"math"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
)

var errStackUnderflow = calcerrors.NewInvalidExpression("operator is missing an operand")

// EvaluatePostfix runs an RPN token stream on a value stack.
func EvaluatePostfix(tokens []Token) (float64, error) {
	stack := make([]float64, 0, len(tokens))

	for _, tok := range tokens {
		if tok.Kind == TokenNumber {
			stack = append(stack, tok.Value)
			continue
		}

		if len(stack) < 2 {
			return 0, errStackUnderflow
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		v, err := tok.Op.Apply(a, b)
		if err != nil {
			return 0, err
		}
		stack = append(stack, v)
	}

	if len(stack) != 1 {
		return 0, calcerrors.NewInvalidExpression(fmt.Sprintf("expected one result, stack holds %d", len(stack)))
	}
	return stack[0], nil
}

// Evaluate computes a flat infix expression such as "2 + 3 × 4" and corrects
// the result to decimal.ResultDigits significant digits. An empty expression
// evaluates to 0.
func Evaluate(expr string, opts ...Option) (float64, error) {
	tokens, err := Tokenize(expr, opts...)
	if err != nil {
		return 0, err
	}

	var result float64
	switch {
	case len(tokens) == 0:
		return 0, nil
	case len(tokens) == 1 && tokens[0].Kind == TokenNumber:
		result = tokens[0].Value
	default:
		result, err = EvaluatePostfix(ToPostfix(tokens))
		if err != nil {
			return 0, err
		}
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, calcerrors.NewInvalidExpression("result is not a finite number")
	}
	return decimal.FormatResult(result), nil
}
