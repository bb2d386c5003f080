package machine

import (
	"strings"
	"unicode/utf8"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
	"go-chi-calculator/internal/expression"
)

func pressOperator(s State, op expression.Operator) State {
	switch {
	case s.Expression != "" && s.AwaitingOperand && s.Chain == nil:
		s.Expression = replaceTrailingOperator(s.Expression, op)
		return s

	case s.Expression != "":
		result, err := expression.Evaluate(s.pendingOperation(), expression.WithExponents())
		if err != nil {
			return withError(s, calcerrors.MsgGeneric)
		}
		s.Expression = decimal.FormatNumber(result) + " " + string(op)
		s.CurrentInput = "0"
		s.LastResult = floatPtr(result)
		s.Chain = nil
		s.AwaitingOperand = true
		return s

	default:
		s.Expression = baseOperand(s) + " " + string(op)
		s.CurrentInput = "0"
		s.LastResult = nil
		s.AwaitingOperand = true
		return s
	}
}

// baseOperand is the left operand of a new expression. A result whose entry
// was cleared back to the "0" placeholder still continues the chain.
func baseOperand(s State) string {
	if s.LastResult != nil && s.Expression == "" && s.CurrentInput == "0" {
		return decimal.FormatNumber(*s.LastResult)
	}
	return normalizeOperand(s.CurrentInput)
}

// replaceTrailingOperator swaps the pending operator glyph for op so the
// expression never ends in two operators.
func replaceTrailingOperator(expr string, op expression.Operator) string {
	trimmed := strings.TrimRight(expr, " ")
	_, size := utf8.DecodeLastRuneInString(trimmed)
	return strings.TrimRight(trimmed[:len(trimmed)-size], " ") + " " + string(op)
}

func (r *Reducer) equals(s State) State {
	if s.Expression == "" {
		return s
	}

	full := s.pendingOperation()
	result, err := expression.Evaluate(full, expression.WithExponents())
	if err != nil {
		return withEngineError(s, err)
	}

	s.History = r.appendHistory(s.History, HistoryEntry{
		Expression: full,
		Result:     result,
		Timestamp:  r.now(),
	})
	s.CurrentInput = decimal.FormatNumber(result)
	s.Expression = ""
	s.LastResult = floatPtr(result)
	s.Chain = nil
	s.Error = ""
	s.AwaitingOperand = false
	return s
}

func (r *Reducer) appendHistory(history []HistoryEntry, e HistoryEntry) []HistoryEntry {
	next := make([]HistoryEntry, 0, len(history)+1)
	next = append(next, history...)
	next = append(next, e)
	if r.MaxHistory > 0 && len(next) > r.MaxHistory {
		next = next[len(next)-r.MaxHistory:]
	}
	return next
}

// percent replaces the entry with its contextual percentage. The committed
// expression stays pending.
func percent(s State) State {
	v, err := expression.CalculatePercent(s.committedPrefix(), s.CurrentInput, expression.WithExponents())
	if err != nil {
		return withError(s, calcerrors.MsgGeneric)
	}

	s = endChain(s)
	s.CurrentInput = decimal.FormatNumber(decimal.FormatResult(v))
	s.AwaitingOperand = false
	return s
}
