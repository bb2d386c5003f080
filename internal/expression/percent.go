package expression

import (
	"fmt"
	"strconv"
	"strings"

	calcerrors "go-chi-calculator/internal/errors"
)

// CalculatePercent resolves the % key against the pending expression.
//
// After + or − the entry is a percentage of the operand before the operator
// ("50 + 10%" is 5). After × or ÷, or with nothing pending, it is entry/100.
func CalculatePercent(expr, entry string, opts ...Option) (float64, error) {
	current, err := parseEntry(entry)
	if err != nil {
		return 0, err
	}

	expr = strings.TrimSpace(expr)
	idx, op := lastOperator(expr)
	if idx < 0 || op == OpMultiply || op == OpDivide {
		return current / 100, nil
	}

	return previousOperand(expr[:idx], opts) * (current / 100), nil
}

func parseEntry(entry string) (float64, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" || entry == "-" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(entry, 64)
	if err != nil {
		return 0, calcerrors.NewInvalidExpression(fmt.Sprintf("malformed entry %q", entry))
	}
	return v, nil
}

// lastOperator returns the byte offset and glyph of the right-most operator.
func lastOperator(expr string) (int, Operator) {
	best := -1
	var found Operator
	for _, op := range []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide} {
		if i := strings.LastIndex(expr, string(op)); i > best {
			best, found = i, op
		}
	}
	return best, found
}

// previousOperand is the last number in prefix, or 0 when there is none.
func previousOperand(prefix string, opts []Option) float64 {
	tokens, err := Tokenize(prefix, opts...)
	if err != nil || len(tokens) == 0 {
		return 0
	}

	last := tokens[len(tokens)-1]
	if last.Kind != TokenNumber {
		return 0
	}
	return last.Value
}
