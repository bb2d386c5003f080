package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a calculator engine failure.
type Kind string

const (
	KindDivisionByZero    Kind = "DIVISION_BY_ZERO"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindInvalidExpression Kind = "INVALID_EXPRESSION"
)

// User-facing messages shown in place of the readout.
const (
	MsgDivisionByZero = "Cannot divide by zero"
	MsgInvalidInput   = "Invalid input"
	MsgGeneric        = "Error"
)

// CalcError is the error type returned by the expression engine and the
// precision helpers.
type CalcError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewDivisionByZero creates an error for a zero divisor.
func NewDivisionByZero() *CalcError {
	return &CalcError{
		Kind:    KindDivisionByZero,
		Message: "division by zero",
	}
}

// NewInvalidInput creates an error for an operand outside a function's domain.
func NewInvalidInput(msg string) *CalcError {
	return &CalcError{
		Kind:    KindInvalidInput,
		Message: msg,
	}
}

// NewInvalidExpression creates an error for a malformed expression or a
// result that cannot be represented.
func NewInvalidExpression(msg string) *CalcError {
	return &CalcError{
		Kind:    KindInvalidExpression,
		Message: msg,
	}
}

// KindOf returns the kind of the first CalcError in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var cErr *CalcError
	if stderrors.As(err, &cErr) {
		return cErr.Kind
	}
	return ""
}

// Is checks if err is (or wraps) a CalcError with the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage maps an error to the text shown on the calculator display.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindDivisionByZero:
		return MsgDivisionByZero
	case KindInvalidInput:
		return MsgInvalidInput
	default:
		return MsgGeneric
	}
}
