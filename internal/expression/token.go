// Package expression evaluates flat infix arithmetic: tokenize, reorder to
// postfix with shunting-yard, then evaluate on a value stack.
package expression

import (
	"fmt"

	calcerrors "go-chi-calculator/internal/errors"
)

// Operator is one of the four binary operator glyphs.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "−"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// operatorAliases maps keyboard spellings onto the display glyphs.
var operatorAliases = map[string]Operator{
	"+": OpAdd,
	"−": OpSubtract,
	"-": OpSubtract,
	"×": OpMultiply,
	"*": OpMultiply,
	"x": OpMultiply,
	"X": OpMultiply,
	"÷": OpDivide,
	"/": OpDivide,
}

// ParseOperator accepts a glyph or one of its ASCII aliases.
func ParseOperator(s string) (Operator, bool) {
	op, ok := operatorAliases[s]
	return op, ok
}

// Valid reports whether o is one of the four glyphs.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Precedence returns 2 for × and ÷, 1 for + and −, 0 otherwise.
func (o Operator) Precedence() int {
	switch o {
	case OpMultiply, OpDivide:
		return 2
	case OpAdd, OpSubtract:
		return 1
	}
	return 0
}

// Apply computes a o b.
func (o Operator) Apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, calcerrors.NewDivisionByZero()
		}
		return a / b, nil
	}
	return 0, calcerrors.NewInvalidExpression(fmt.Sprintf("unknown operator %q", string(o)))
}

func isOperatorRune(r rune) bool {
	switch Operator(string(r)) {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// TokenKind distinguishes numbers from operators.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
)

// Token is a number or an operator.
type Token struct {
	Kind  TokenKind
	Value float64
	Op    Operator
}

// Number builds a number token.
func Number(v float64) Token {
	return Token{Kind: TokenNumber, Value: v}
}

// Op builds an operator token.
func Op(o Operator) Token {
	return Token{Kind: TokenOperator, Op: o}
}

func (t Token) String() string {
	if t.Kind == TokenOperator {
		return string(t.Op)
	}
	return fmt.Sprintf("%g", t.Value)
}
