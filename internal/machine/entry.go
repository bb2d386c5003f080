package machine

import (
	"strconv"
	"strings"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
)

// startsFresh reports whether the next digit or point discards the current
// entry: a result was just produced, or a unary chain is showing.
func startsFresh(s State) bool {
	return (s.LastResult != nil && s.Expression == "") || s.Chain != nil
}

func exceedsLimit(candidate string) bool {
	unsigned := strings.TrimPrefix(candidate, "-")
	return len(unsigned) > decimal.MaxLiteralLength(unsigned)
}

func inputDigit(s State, d string) State {
	if startsFresh(s) {
		s = endChain(s)
		s.CurrentInput = d
		s.LastResult = nil
		s.AwaitingOperand = false
		return s
	}

	var next string
	switch s.CurrentInput {
	case "0":
		next = d
	case "-0":
		next = "-" + d
	default:
		next = s.CurrentInput + d
	}
	if exceedsLimit(next) {
		return s
	}

	s.CurrentInput = next
	s.AwaitingOperand = false
	return s
}

func inputDot(s State) State {
	if startsFresh(s) {
		s = endChain(s)
		s.CurrentInput = "0."
		s.LastResult = nil
		s.AwaitingOperand = false
		return s
	}

	if strings.Contains(s.CurrentInput, ".") {
		return s
	}
	next := s.CurrentInput + "."
	if exceedsLimit(next) {
		return s
	}

	s.CurrentInput = next
	s.AwaitingOperand = false
	return s
}

func backspace(s State) State {
	s = endChain(s)

	in := s.CurrentInput
	if len(in) <= 1 {
		s.CurrentInput = "0"
		return s
	}

	// Never leave a bare sign or a dangling exponent behind.
	next := strings.TrimRight(in[:len(in)-1], "e+-")
	if next == "" {
		next = "0"
	}
	s.CurrentInput = next
	return s
}

// negate toggles the sign of the entry. Negating a chain result ends the
// chain: the negated value is a fresh operand.
func negate(s State) State {
	if s.CurrentInput == "0" {
		return s
	}

	s = endChain(s)
	if rest, ok := strings.CutPrefix(s.CurrentInput, "-"); ok {
		s.CurrentInput = rest
	} else {
		s.CurrentInput = "-" + s.CurrentInput
	}
	s.AwaitingOperand = false
	return s
}

// clearEntry zeroes the entry and keeps the committed expression. An active
// chain is the entry being cleared, so its trace goes with it.
func clearEntry(s State) State {
	s = endChain(s)
	s.CurrentInput = "0"
	s.Error = ""
	s.AwaitingOperand = s.Expression != ""
	return s
}

func parseOperand(in string) (float64, error) {
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0, calcerrors.NewInvalidExpression("malformed entry " + strconv.Quote(in))
	}
	return v, nil
}

// normalizeOperand rewrites an entry such as "5." or "-0" in canonical form.
func normalizeOperand(in string) string {
	v, err := parseOperand(in)
	if err != nil {
		return in
	}
	return decimal.FormatNumber(v)
}
